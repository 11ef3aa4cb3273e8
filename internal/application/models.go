package application

import (
	"time"

	"github.com/example/arena-booking/internal/access"
)

// Principal represents the authenticated identity invoking a service method.
type Principal struct {
	UserID     string
	Role       access.Role
	LocationID string
}

// Actor projects the principal onto the access policy's view of an identity.
func (p Principal) Actor() access.Actor {
	return access.Actor{Role: p.Role, LocationID: p.LocationID}
}

// SessionStatus enumerates the lifecycle states of a booking session.
type SessionStatus string

const (
	StatusPlanned   SessionStatus = "planned"
	StatusArrived   SessionStatus = "arrived"
	StatusCompleted SessionStatus = "completed"
	StatusCanceled  SessionStatus = "canceled"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s SessionStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusArrived, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// Session is a time-boxed booking of a single resource.
type Session struct {
	ID          string
	LocationID  string
	ResourceID  string
	GameID      string
	StartAt     time.Time
	EndAt       time.Time
	DurationMin int
	Status      SessionStatus

	Players      *int
	ContactName  *string
	ContactPhone *string
	Comment      *string

	CanceledReason *string
	CanceledAt     *time.Time
	CompletedAt    *time.Time

	CreatedBy string
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionView enriches a session with display names resolved from the
// resource and game catalog. Names are empty strings when the linked record
// is absent, never null.
type SessionView struct {
	Session
	ResourceName string
	GameName     string
	GameIcon     string
}

// SessionInput captures caller provided fields for a new session.
type SessionInput struct {
	ResourceID   string
	GameID       string
	StartAt      time.Time
	DurationMin  int
	Status       SessionStatus
	Players      *int
	ContactName  *string
	ContactPhone *string
	Comment      *string
}

/// SessionPatch is a sparse update: nil fields are left unchanged. A caller
// cannot clear a previously set optional field through this type; omission
// and an explicit null are treated identically.
type SessionPatch struct {
	ResourceID   *string
	GameID       *string
	StartAt      *time.Time
	DurationMin  *int
	Status       *SessionStatus
	Players      *int
	ContactName  *string
	ContactPhone *string
	Comment      *string
}

// CreateSessionParams wraps the data required to create a session.
type CreateSessionParams struct {
	Principal Principal
	Input     SessionInput
}

// UpdateSessionParams wraps the data required to patch an existing session.
type UpdateSessionParams struct {
	Principal Principal
	SessionID string
	Patch     SessionPatch
}

// Location is a scoping boundary for resources, sessions, and admins.
type Location struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Resource is a bookable physical asset tied to one location.
type Resource struct {
	ID         string
	LocationID string
	Name       string
	CreatedAt  time.Time
}

// Game is a catalog entry selectable when booking. Deactivated games stay
// referenced by existing sessions but cannot be newly selected.
type Game struct {
	ID        string
	Name      string
	ModeIcon  *string
	IsActive  bool
	CreatedAt time.Time
}

// GameInput captures caller provided fields for a new game.
type GameInput struct {
	Name     string
	ModeIcon *string
}

// GamePatch is a sparse update for a game catalog entry.
type GamePatch struct {
	Name     *string
	ModeIcon *string
	IsActive *bool
}

// CreateGameParams wraps the data required to create a game.
type CreateGameParams struct {
	Principal Principal
	Input     GameInput
}

// UpdateGameParams wraps the data required to update a game.
type UpdateGameParams struct {
	Principal Principal
	GameID    string
	Patch     GamePatch
}

// User is an account able to authenticate against the service.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         access.Role
	LocationID   string
	Active       bool
	CreatedAt    time.Time
}

// AuthenticateParams captures a login attempt.
type AuthenticateParams struct {
	Email    string
	Password string
}

// AuthenticateResult carries the issued token and the authenticated user.
type AuthenticateResult struct {
	Token     string
	ExpiresAt time.Time
	User      User
}
