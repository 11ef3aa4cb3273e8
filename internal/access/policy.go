// Package access implements the location-scoping policy applied to every
// read and write entry point. Owners see all locations; admins are confined
// to their home location.
package access

import "errors"

// ErrForbidden is returned when the acting identity lacks the required
// role or location access for an operation.
var ErrForbidden = errors.New("access: forbidden")

// Role identifies the privilege level of an authenticated identity.
type Role string

const (
	// RoleOwner grants cross-location access, hard deletion, and catalog
	// mutation rights.
	RoleOwner Role = "owner"
	// RoleAdmin grants access to the identity's home location only.
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleAdmin
}

// Actor carries the attributes of an authenticated identity that the policy
// evaluates. LocationID is empty when the identity has no home location.
type Actor struct {
	Role       Role
	LocationID string
}

// CanAccessLocation reports whether the actor may read or mutate records
// scoped to the given location.
func CanAccessLocation(actor Actor, locationID string) bool {
	if actor.Role == RoleOwner {
		return true
	}
	return actor.LocationID != "" && actor.LocationID == locationID
}

// RequireOwner fails with ErrForbidden unless the actor holds the owner role.
func RequireOwner(actor Actor) error {
	if actor.Role != RoleOwner {
		return ErrForbidden
	}
	return nil
}

// LocationScope returns the location filter a repository query must apply for
// the actor: empty for owners (no filter), the home location otherwise.
func LocationScope(actor Actor) string {
	if actor.Role == RoleOwner {
		return ""
	}
	return actor.LocationID
}
