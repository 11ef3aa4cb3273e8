package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/arena-booking/internal/access"
	"github.com/example/arena-booking/internal/application"
)

var (
	locationCounter uint64
	resourceCounter uint64
	gameCounter     uint64
	userCounter     uint64
	sessionCounter  uint64
)

var referenceTime = time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// LocationOption configures a generated location fixture.
type LocationOption func(*application.Location)

// NewLocation returns a deterministic location with optional overrides.
func NewLocation(opts ...LocationOption) application.Location {
	idx := atomic.AddUint64(&locationCounter, 1)
	location := application.Location{
		ID:        fmt.Sprintf("location-%03d", idx),
		Name:      fmt.Sprintf("Arena Site %03d", idx),
		CreatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&location)
	}
	return location
}

// ResourceOption configures a generated resource fixture.
type ResourceOption func(*application.Resource)

// WithResourceLocation pins the resource to a location.
func WithResourceLocation(locationID string) ResourceOption {
	return func(resource *application.Resource) {
		resource.LocationID = locationID
	}
}

// NewResource returns a deterministic resource with optional overrides.
func NewResource(opts ...ResourceOption) application.Resource {
	idx := atomic.AddUint64(&resourceCounter, 1)
	resource := application.Resource{
		ID:         fmt.Sprintf("resource-%03d", idx),
		LocationID: "location-001",
		Name:       fmt.Sprintf("Arena %03d", idx),
		CreatedAt:  referenceTime,
	}
	for _, opt := range opts {
		opt(&resource)
	}
	return resource
}

// GameOption configures a generated game fixture.
type GameOption func(*application.Game)

// Inactive marks the generated game as not selectable.
func Inactive() GameOption {
	return func(game *application.Game) {
		game.IsActive = false
	}
}

// NewGame returns a deterministic active game with optional overrides.
func NewGame(opts ...GameOption) application.Game {
	idx := atomic.AddUint64(&gameCounter, 1)
	game := application.Game{
		ID:        fmt.Sprintf("game-%03d", idx),
		Name:      fmt.Sprintf("Game %03d", idx),
		IsActive:  true,
		CreatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&game)
	}
	return game
}

// UserOption configures a generated user fixture.
type UserOption func(*application.User)

// AsOwner promotes the generated user to the owner role without a location.
func AsOwner() UserOption {
	return func(user *application.User) {
		user.Role = access.RoleOwner
		user.LocationID = ""
	}
}

// WithUserLocation pins an admin user to a location.
func WithUserLocation(locationID string) UserOption {
	return func(user *application.User) {
		user.LocationID = locationID
	}
}

// NewUser returns a deterministic active admin with optional overrides.
func NewUser(opts ...UserOption) application.User {
	idx := atomic.AddUint64(&userCounter, 1)
	id := fmt.Sprintf("user-%03d", idx)
	user := application.User{
		ID:           id,
		Email:        fmt.Sprintf("%s@arena.test", id),
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
		Role:         access.RoleAdmin,
		LocationID:   "location-001",
		Active:       true,
		CreatedAt:    referenceTime,
	}
	for _, opt := range opts {
		opt(&user)
	}
	return user
}

// SessionOption configures a generated session fixture.
type SessionOption func(*application.Session)

// WithWindow positions the session at the given start for the given number
// of minutes.
func WithWindow(start time.Time, durationMin int) SessionOption {
	return func(session *application.Session) {
		session.StartAt = start
		session.EndAt = start.Add(time.Duration(durationMin) * time.Minute)
		session.DurationMin = durationMin
	}
}

// WithStatus overrides the session status.
func WithStatus(status application.SessionStatus) SessionOption {
	return func(session *application.Session) {
		session.Status = status
	}
}

// OnResource pins the session to a resource and location.
func OnResource(resourceID, locationID string) SessionOption {
	return func(session *application.Session) {
		session.ResourceID = resourceID
		session.LocationID = locationID
	}
}

// NewSession returns a deterministic planned session with optional overrides.
// Each generated session occupies its own hour so fixtures never collide
// unless a test asks for it.
func NewSession(opts ...SessionOption) application.Session {
	idx := atomic.AddUint64(&sessionCounter, 1)
	start := referenceTime.Add(time.Duration(idx) * time.Hour)
	session := application.Session{
		ID:          fmt.Sprintf("session-%03d", idx),
		LocationID:  "location-001",
		ResourceID:  "resource-001",
		GameID:      "game-001",
		StartAt:     start,
		EndAt:       start.Add(time.Hour),
		DurationMin: 60,
		Status:      application.StatusPlanned,
		CreatedBy:   "user-001",
		UpdatedBy:   "user-001",
		CreatedAt:   referenceTime,
		UpdatedAt:   referenceTime,
	}
	for _, opt := range opts {
		opt(&session)
	}
	return session
}

// NewSessionView wraps a session fixture in a display view with resolved
// names.
func NewSessionView(opts ...SessionOption) application.SessionView {
	return application.SessionView{
		Session:      NewSession(opts...),
		ResourceName: "Arena 160",
		GameName:     "Laser Quest",
	}
}
