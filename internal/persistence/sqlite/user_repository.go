package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/example/arena-booking/internal/access"
	"github.com/example/arena-booking/internal/application"
	"github.com/example/arena-booking/internal/persistence"
)

// UserRepository persists accounts. Emails are stored lowercase; the owner
// account carries no location.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a user repository over db.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts an account. A taken email fails with
// persistence.ErrDuplicate.
func (r *UserRepository) CreateUser(ctx context.Context, user application.User) (application.User, error) {
	user.Email = strings.ToLower(user.Email)
	var locationID sql.NullString
	if user.LocationID != "" {
		locationID = sql.NullString{String: user.LocationID, Valid: true}
	}

	_, err := r.db.sql.ExecContext(ctx, `
	INSERT INTO users (id, email, password_hash, role, location_id, is_active, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.PasswordHash, string(user.Role),
		locationID, boolInt(user.Active), formatTime(user.CreatedAt),
	)
	if err != nil {
		return application.User{}, mapSQLiteError(err)
	}
	return user, nil
}

// UpdateUser writes the full account row.
func (r *UserRepository) UpdateUser(ctx context.Context, user application.User) (application.User, error) {
	user.Email = strings.ToLower(user.Email)
	var locationID sql.NullString
	if user.LocationID != "" {
		locationID = sql.NullString{String: user.LocationID, Valid: true}
	}

	result, err := r.db.sql.ExecContext(ctx, `
	UPDATE users SET email = ?, password_hash = ?, role = ?, location_id = ?, is_active = ?
	WHERE id = ?`,
		user.Email, user.PasswordHash, string(user.Role), locationID, boolInt(user.Active),
		user.ID,
	)
	if err != nil {
		return application.User{}, mapSQLiteError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return application.User{}, err
	}
	if affected == 0 {
		return application.User{}, persistence.ErrNotFound
	}
	return user, nil
}

// GetUser loads one account by id.
func (r *UserRepository) GetUser(ctx context.Context, id string) (application.User, error) {
	return r.scanUser(r.db.sql.QueryRowContext(ctx,
		"SELECT id, email, password_hash, role, location_id, is_active, created_at FROM users WHERE id = ?", id,
	))
}

// GetUserByEmail loads one account by its lowercase email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (application.User, error) {
	return r.scanUser(r.db.sql.QueryRowContext(ctx,
		"SELECT id, email, password_hash, role, location_id, is_active, created_at FROM users WHERE email = ?",
		strings.ToLower(email),
	))
}

func (r *UserRepository) scanUser(row rowScanner) (application.User, error) {
	var (
		user       application.User
		role       string
		locationID sql.NullString
		isActive   int
		createdAt  string
	)
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &role, &locationID, &isActive, &createdAt); err != nil {
		return application.User{}, mapSQLiteError(err)
	}
	user.Role = access.Role(role)
	user.LocationID = locationID.String
	user.Active = isActive == 1
	var err error
	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return application.User{}, err
	}
	return user, nil
}
