// Package seed provisions the default records a fresh installation needs:
// the home location with its first resource, the starter game catalog, and
// the owner account. Every step is idempotent so it can run on each startup.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/arena-booking/internal/access"
	"github.com/example/arena-booking/internal/application"
	"github.com/example/arena-booking/internal/persistence"
)

type LocationStore interface {
	GetLocationByName(ctx context.Context, name string) (application.Location, error)
	CreateLocation(ctx context.Context, location application.Location) (application.Location, error)
}

type ResourceStore interface {
	GetResourceByName(ctx context.Context, locationID, name string) (application.Resource, error)
	CreateResource(ctx context.Context, resource application.Resource) (application.Resource, error)
}

type GameStore interface {
	GetGameByName(ctx context.Context, name string) (application.Game, error)
	CreateGame(ctx context.Context, game application.Game) (application.Game, error)
	UpdateGame(ctx context.Context, game application.Game) (application.Game, error)
}

type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (application.User, error)
	CreateUser(ctx context.Context, user application.User) (application.User, error)
	UpdateUser(ctx context.Context, user application.User) (application.User, error)
}

// defaultGames is the starter catalog installed on first run. Seeding
// reactivates and refreshes entries that already exist by name.
var defaultGames = []struct {
	name     string
	modeIcon string
}{
	{name: "Laser Quest", modeIcon: "crosshair"},
	{name: "Zombie Outbreak", modeIcon: "skull"},
	{name: "Space Pirates", modeIcon: "rocket"},
	{name: "Castle Siege", modeIcon: "shield"},
	{name: "Neon Racers", modeIcon: "flag"},
}

// Config carries the seed inputs resolved from the environment.
type Config struct {
	LocationName  string
	ResourceName  string
	OwnerEmail    string
	OwnerPassword string
}

// Seeder installs default records through the persistence layer.
type Seeder struct {
	locations   LocationStore
	resources   ResourceStore
	games       GameStore
	users       UserStore
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// New creates a seeder.
func New(locations LocationStore, resources ResourceStore, games GameStore, users UserStore, idGenerator func() string, now func() time.Time, logger *slog.Logger) *Seeder {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		locations:   locations,
		resources:   resources,
		games:       games,
		users:       users,
		idGenerator: idGenerator,
		now:         now,
		logger:      logger,
	}
}

// Run provisions defaults, starter games, and the owner account. The owner
// step is skipped when no email is configured.
func (s *Seeder) Run(ctx context.Context, cfg Config) error {
	location, _, err := s.EnsureDefaults(ctx, cfg.LocationName, cfg.ResourceName)
	if err != nil {
		return err
	}

	if err := s.SeedGames(ctx); err != nil {
		return err
	}

	if cfg.OwnerEmail == "" {
		s.logger.InfoContext(ctx, "no owner email configured, skipping owner seed")
		return nil
	}
	_, err = s.EnsureOwner(ctx, cfg.OwnerEmail, cfg.OwnerPassword, location.ID)
	return err
}

// EnsureDefaults creates the home location and its first resource if they do
// not exist yet, looking both up by name.
func (s *Seeder) EnsureDefaults(ctx context.Context, locationName, resourceName string) (application.Location, application.Resource, error) {
	location, err := s.locations.GetLocationByName(ctx, locationName)
	switch {
	case err == nil:
	case errors.Is(err, persistence.ErrNotFound):
		location, err = s.locations.CreateLocation(ctx, application.Location{
			ID:        s.idGenerator(),
			Name:      locationName,
			CreatedAt: s.now(),
		})
		if err != nil {
			return application.Location{}, application.Resource{}, fmt.Errorf("create default location: %w", err)
		}
		s.logger.InfoContext(ctx, "created default location", "location_id", location.ID, "name", location.Name)
	default:
		return application.Location{}, application.Resource{}, fmt.Errorf("look up default location: %w", err)
	}

	resource, err := s.resources.GetResourceByName(ctx, location.ID, resourceName)
	switch {
	case err == nil:
	case errors.Is(err, persistence.ErrNotFound):
		resource, err = s.resources.CreateResource(ctx, application.Resource{
			ID:         s.idGenerator(),
			LocationID: location.ID,
			Name:       resourceName,
			CreatedAt:  s.now(),
		})
		if err != nil {
			return application.Location{}, application.Resource{}, fmt.Errorf("create default resource: %w", err)
		}
		s.logger.InfoContext(ctx, "created default resource", "resource_id", resource.ID, "name", resource.Name)
	default:
		return application.Location{}, application.Resource{}, fmt.Errorf("look up default resource: %w", err)
	}

	return location, resource, nil
}

// SeedGames upserts the starter catalog. Entries that already exist keep
// their id; their icon is refreshed and they are reactivated.
func (s *Seeder) SeedGames(ctx context.Context) error {
	for _, entry := range defaultGames {
		icon := entry.modeIcon

		existing, err := s.games.GetGameByName(ctx, entry.name)
		switch {
		case err == nil:
			existing.ModeIcon = &icon
			existing.IsActive = true
			if _, err := s.games.UpdateGame(ctx, existing); err != nil {
				return fmt.Errorf("refresh game %q: %w", entry.name, err)
			}
		case errors.Is(err, persistence.ErrNotFound):
			_, err := s.games.CreateGame(ctx, application.Game{
				ID:        s.idGenerator(),
				Name:      entry.name,
				ModeIcon:  &icon,
				IsActive:  true,
				CreatedAt: s.now(),
			})
			if err != nil {
				return fmt.Errorf("create game %q: %w", entry.name, err)
			}
		default:
			return fmt.Errorf("look up game %q: %w", entry.name, err)
		}
	}
	return nil
}

// EnsureOwner creates or updates the owner account. An existing account with
// the same email gets its password rotated and its role forced to owner.
func (s *Seeder) EnsureOwner(ctx context.Context, email, password, locationID string) (application.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return application.User{}, fmt.Errorf("owner email and password are required")
	}

	hash, err := application.CreatePasswordHash(password, application.DefaultArgon2idParams)
	if err != nil {
		return application.User{}, fmt.Errorf("hash owner password: %w", err)
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		existing.PasswordHash = hash
		existing.Role = access.RoleOwner
		existing.LocationID = locationID
		existing.Active = true
		user, err := s.users.UpdateUser(ctx, existing)
		if err != nil {
			return application.User{}, fmt.Errorf("update owner account: %w", err)
		}
		s.logger.InfoContext(ctx, "updated owner account", "user_id", user.ID)
		return user, nil
	case errors.Is(err, persistence.ErrNotFound):
		user, err := s.users.CreateUser(ctx, application.User{
			ID:           s.idGenerator(),
			Email:        email,
			PasswordHash: hash,
			Role:         access.RoleOwner,
			LocationID:   locationID,
			Active:       true,
			CreatedAt:    s.now(),
		})
		if err != nil {
			return application.User{}, fmt.Errorf("create owner account: %w", err)
		}
		s.logger.InfoContext(ctx, "created owner account", "user_id", user.ID)
		return user, nil
	default:
		return application.User{}, fmt.Errorf("look up owner account: %w", err)
	}
}
