// Package persistence defines the sentinel errors shared by the storage
// implementations. Services translate these into their own error taxonomy.
package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("persistence: duplicate")
	// ErrConflict is returned when a write would violate the booking
	// overlap rule.
	ErrConflict = errors.New("persistence: booking conflict")
	// ErrForeignKeyViolation is returned when a write references a missing
	// related record.
	ErrForeignKeyViolation = errors.New("persistence: foreign key violation")
)
