// Package audit models the append-only change trail written alongside every
// session mutation. Entries carry a loose field-to-value mapping: update
// diffs store {from,to} pairs per field, cancel and delete store the plain
// reason text. The mapping round-trips through JSON unchanged.
package audit

import (
	"strconv"
	"time"
)

// Change records the before and after values of a single field.
type Change struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Changes maps field names to either a Change or a plain string value.
type Changes map[string]any

// Entry describes one change record before persistence assigns its identity.
type Entry struct {
	ActorID    string
	EntityType string
	EntityID   string
	Action     string
	Changes    Changes
}

// Record is a persisted audit entry.
type Record struct {
	ID        string
	Entry
	CreatedAt time.Time
}

// NewEntry builds an entry, substituting an empty mapping when changes is nil.
func NewEntry(actorID, entityType, entityID, action string, changes Changes) Entry {
	if changes == nil {
		changes = Changes{}
	}
	return Entry{
		ActorID:    actorID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Changes:    changes,
	}
}

// Diff accumulates field-level changes, recording only fields whose value
// actually differs. Timestamps are normalized to RFC3339 text.
type Diff struct {
	changes Changes
}

// NewDiff returns an empty diff accumulator.
func NewDiff() *Diff {
	return &Diff{changes: Changes{}}
}

// String records a change when from and to differ.
func (d *Diff) String(field, from, to string) {
	if from == to {
		return
	}
	d.changes[field] = Change{From: from, To: to}
}

// OptionalString records a change between two optional values. A nil pointer
// is rendered as the empty string.
func (d *Diff) OptionalString(field string, from, to *string) {
	d.String(field, derefString(from), derefString(to))
}

// Int records a change between two integer values.
func (d *Diff) Int(field string, from, to int) {
	d.String(field, strconv.Itoa(from), strconv.Itoa(to))
}

// OptionalInt records a change between two optional integers.
func (d *Diff) OptionalInt(field string, from, to *int) {
	d.String(field, formatOptionalInt(from), formatOptionalInt(to))
}

// Time records a change between two timestamps as RFC3339 text.
func (d *Diff) Time(field string, from, to time.Time) {
	if from.Equal(to) {
		return
	}
	d.changes[field] = Change{
		From: from.UTC().Format(time.RFC3339),
		To:   to.UTC().Format(time.RFC3339),
	}
}

// Empty reports whether no changes were recorded.
func (d *Diff) Empty() bool {
	return len(d.changes) == 0
}

// Changes returns the accumulated mapping.
func (d *Diff) Changes() Changes {
	return d.changes
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
