package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/arena-booking/internal/access"
)

// GameRepository captures the persistence operations for the game catalog.
type GameRepository interface {
	CreateGame(ctx context.Context, game Game) (Game, error)
	GetGame(ctx context.Context, id string) (Game, error)
	UpdateGame(ctx context.Context, game Game) (Game, error)
	DeleteGame(ctx context.Context, id string) error
	ListGames(ctx context.Context, activeOnly bool) ([]Game, error)
}

// GameService manages the game catalog. Any authenticated identity may list
// games; mutations require the owner role.
type GameService struct {
	games       GameRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewGameService constructs a game service.
func NewGameService(games GameRepository, idGenerator func() string, now func() time.Time) *GameService {
	return NewGameServiceWithLogger(games, idGenerator, now, nil)
}

// NewGameServiceWithLogger constructs a game service with a specified logger.
func NewGameServiceWithLogger(games GameRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *GameService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &GameService{games: games, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *GameService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "GameService", operation, attrs...)
}

// ListGames enumerates catalog entries, name ascending. With activeOnly set
// only selectable games are returned.
func (s *GameService) ListGames(ctx context.Context, principal Principal, activeOnly bool) ([]Game, error) {
	if s == nil || s.games == nil {
		return nil, fmt.Errorf("game repository not configured")
	}
	games, err := s.games.ListGames(ctx, activeOnly)
	return games, mapRepoError(err)
}

// CreateGame adds a catalog entry. Names are unique; a taken name fails with
// ErrAlreadyExists.
func (s *GameService) CreateGame(ctx context.Context, params CreateGameParams) (game Game, err error) {
	if s == nil || s.games == nil {
		err = fmt.Errorf("game repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateGame", "principal_id", params.Principal.UserID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create game", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("game_id", game.ID).InfoContext(ctx, "game created")
	}()

	if err = access.RequireOwner(params.Principal.Actor()); err != nil {
		err = ErrForbidden
		return
	}

	name := strings.TrimSpace(params.Input.Name)
	if name == "" {
		vErr := &ValidationError{}
		vErr.add("name", "name is required")
		err = vErr
		return
	}

	game = Game{
		ID:        s.idGenerator(),
		Name:      name,
		ModeIcon:  params.Input.ModeIcon,
		IsActive:  true,
		CreatedAt: s.now(),
	}

	game, err = s.games.CreateGame(ctx, game)
	err = mapRepoError(err)
	return
}

// UpdateGame applies a sparse patch to a catalog entry. Deactivating a game
// leaves existing sessions referencing it untouched.
func (s *GameService) UpdateGame(ctx context.Context, params UpdateGameParams) (game Game, err error) {
	if s == nil || s.games == nil {
		err = fmt.Errorf("game repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateGame",
		"principal_id", params.Principal.UserID,
		"game_id", params.GameID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update game", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "game updated")
	}()

	if err = access.RequireOwner(params.Principal.Actor()); err != nil {
		err = ErrForbidden
		return
	}

	var current Game
	current, err = s.games.GetGame(ctx, params.GameID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	updated := current
	if params.Patch.Name != nil {
		name := strings.TrimSpace(*params.Patch.Name)
		if name == "" {
			vErr := &ValidationError{}
			vErr.add("name", "name is required")
			err = vErr
			return
		}
		updated.Name = name
	}
	if params.Patch.ModeIcon != nil {
		updated.ModeIcon = params.Patch.ModeIcon
	}
	if params.Patch.IsActive != nil {
		updated.IsActive = *params.Patch.IsActive
	}

	game, err = s.games.UpdateGame(ctx, updated)
	err = mapRepoError(err)
	return
}

// DeleteGame removes a catalog entry.
func (s *GameService) DeleteGame(ctx context.Context, principal Principal, gameID string) (err error) {
	if s == nil || s.games == nil {
		return fmt.Errorf("game repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteGame",
		"principal_id", principal.UserID,
		"game_id", gameID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete game", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "game deleted")
	}()

	if err = access.RequireOwner(principal.Actor()); err != nil {
		err = ErrForbidden
		return
	}

	err = mapRepoError(s.games.DeleteGame(ctx, gameID))
	return
}
