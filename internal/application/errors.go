package application

import (
	"errors"

	"github.com/example/arena-booking/internal/persistence"
)

var (
	// ErrNotFound is returned when the requested record does not exist, or
	// when a non-owner asks for a record outside their location. The two
	// cases are deliberately indistinguishable.
	ErrNotFound = errors.New("application: not found")
	// ErrForbidden is returned when the acting principal lacks location
	// access or the owner privilege an operation requires.
	ErrForbidden = errors.New("application: forbidden")
	// ErrConflict is returned when a booking would overlap an active
	// session on the same resource.
	ErrConflict = errors.New("application: booking conflict")
	// ErrAlreadyExists is returned when a unique catalog name is taken.
	ErrAlreadyExists = errors.New("application: already exists")
	// ErrInvalidCredentials is returned for failed login attempts.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
	// ErrInvalidToken is returned when a bearer token cannot be validated
	// or its subject can no longer authenticate.
	ErrInvalidToken = errors.New("application: invalid token")
)

// ValidationError captures field level validation issues that callers can
// surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// mapRepoError translates persistence sentinels into the application
// taxonomy. Unknown errors pass through unchanged.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrConflict):
		return ErrConflict
	case errors.Is(err, persistence.ErrDuplicate):
		return ErrAlreadyExists
	case errors.Is(err, persistence.ErrForeignKeyViolation):
		return ErrNotFound
	}
	return err
}
