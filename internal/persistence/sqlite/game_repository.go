package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/arena-booking/internal/application"
	"github.com/example/arena-booking/internal/persistence"
)

// GameRepository persists the game catalog.
type GameRepository struct {
	db *DB
}

// NewGameRepository creates a game repository over db.
func NewGameRepository(db *DB) *GameRepository {
	return &GameRepository{db: db}
}

// CreateGame inserts a catalog entry. A duplicate name fails with
// persistence.ErrDuplicate.
func (r *GameRepository) CreateGame(ctx context.Context, game application.Game) (application.Game, error) {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO games (id, name, mode_icon, is_active, created_at) VALUES (?, ?, ?, ?, ?)",
		game.ID, game.Name, nullString(game.ModeIcon), boolInt(game.IsActive), formatTime(game.CreatedAt),
	)
	if err != nil {
		return application.Game{}, mapSQLiteError(err)
	}
	return game, nil
}

// GetGame loads one catalog entry by id.
func (r *GameRepository) GetGame(ctx context.Context, id string) (application.Game, error) {
	return r.scanGame(r.db.sql.QueryRowContext(ctx,
		"SELECT id, name, mode_icon, is_active, created_at FROM games WHERE id = ?", id,
	))
}

// GetGameByName looks a catalog entry up by its unique name.
func (r *GameRepository) GetGameByName(ctx context.Context, name string) (application.Game, error) {
	return r.scanGame(r.db.sql.QueryRowContext(ctx,
		"SELECT id, name, mode_icon, is_active, created_at FROM games WHERE name = ?", name,
	))
}

// UpdateGame writes the full catalog row.
func (r *GameRepository) UpdateGame(ctx context.Context, game application.Game) (application.Game, error) {
	result, err := r.db.sql.ExecContext(ctx,
		"UPDATE games SET name = ?, mode_icon = ?, is_active = ? WHERE id = ?",
		game.Name, nullString(game.ModeIcon), boolInt(game.IsActive), game.ID,
	)
	if err != nil {
		return application.Game{}, mapSQLiteError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return application.Game{}, err
	}
	if affected == 0 {
		return application.Game{}, persistence.ErrNotFound
	}
	return game, nil
}

// DeleteGame removes a catalog entry. Deleting a game still referenced by
// sessions fails with persistence.ErrForeignKeyViolation.
func (r *GameRepository) DeleteGame(ctx context.Context, id string) error {
	result, err := r.db.sql.ExecContext(ctx, "DELETE FROM games WHERE id = ?", id)
	if err != nil {
		return mapSQLiteError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// ListGames enumerates catalog entries, name ascending.
func (r *GameRepository) ListGames(ctx context.Context, activeOnly bool) ([]application.Game, error) {
	rows, err := r.db.sql.QueryContext(ctx, `
	SELECT id, name, mode_icon, is_active, created_at FROM games
	WHERE (? = 0 OR is_active = 1)
	ORDER BY name`,
		boolInt(activeOnly),
	)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var games []application.Game
	for rows.Next() {
		game, err := r.scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

func (r *GameRepository) scanGame(row rowScanner) (application.Game, error) {
	var (
		game      application.Game
		modeIcon  sql.NullString
		isActive  int
		createdAt string
	)
	if err := row.Scan(&game.ID, &game.Name, &modeIcon, &isActive, &createdAt); err != nil {
		return application.Game{}, mapSQLiteError(err)
	}
	game.ModeIcon = stringPtr(modeIcon)
	game.IsActive = isActive == 1
	var err error
	if game.CreatedAt, err = parseTime(createdAt); err != nil {
		return application.Game{}, err
	}
	return game, nil
}

func boolInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
