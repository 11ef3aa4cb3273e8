package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/arena-booking/internal/application"
	"github.com/example/arena-booking/internal/audit"
	"github.com/example/arena-booking/internal/persistence"
)

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SessionRepository persists sessions. Overlap enforcement and audit writes
// happen inside the same transaction as the row mutation, so a conflicting
// booking can never slip in between check and write.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a session repository over db.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionViewColumns = `
	s.id, s.location_id, s.resource_id, s.game_id,
	s.start_at, s.end_at, s.duration_min, s.status,
	s.players, s.contact_name, s.contact_phone, s.comment,
	s.canceled_reason, s.canceled_at, s.completed_at,
	s.created_by, s.updated_by, s.created_at, s.updated_at,
	COALESCE(r.name, ''), COALESCE(g.name, ''), COALESCE(g.mode_icon, '')`

const sessionViewFrom = `
	FROM sessions s
	LEFT JOIN resources r ON r.id = s.resource_id
	LEFT JOIN games g ON g.id = s.game_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSessionView(row rowScanner) (application.SessionView, error) {
	var (
		view                          application.SessionView
		startAt, endAt                string
		createdAt, updatedAt          string
		status                        string
		players                       sql.NullInt64
		contactName, contactPhone     sql.NullString
		comment, canceledReason       sql.NullString
		canceledAt, completedAt       sql.NullString
	)

	err := row.Scan(
		&view.ID, &view.LocationID, &view.ResourceID, &view.GameID,
		&startAt, &endAt, &view.DurationMin, &status,
		&players, &contactName, &contactPhone, &comment,
		&canceledReason, &canceledAt, &completedAt,
		&view.CreatedBy, &view.UpdatedBy, &createdAt, &updatedAt,
		&view.ResourceName, &view.GameName, &view.GameIcon,
	)
	if err != nil {
		return application.SessionView{}, err
	}

	view.Status = application.SessionStatus(status)
	view.Players = intPtr(players)
	view.ContactName = stringPtr(contactName)
	view.ContactPhone = stringPtr(contactPhone)
	view.Comment = stringPtr(comment)
	view.CanceledReason = stringPtr(canceledReason)

	if view.StartAt, err = parseTime(startAt); err != nil {
		return application.SessionView{}, err
	}
	if view.EndAt, err = parseTime(endAt); err != nil {
		return application.SessionView{}, err
	}
	if view.CreatedAt, err = parseTime(createdAt); err != nil {
		return application.SessionView{}, err
	}
	if view.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return application.SessionView{}, err
	}
	if view.CanceledAt, err = timePtr(canceledAt); err != nil {
		return application.SessionView{}, err
	}
	if view.CompletedAt, err = timePtr(completedAt); err != nil {
		return application.SessionView{}, err
	}

	return view, nil
}

func getSessionView(ctx context.Context, q querier, id, locationScope string) (application.SessionView, error) {
	query := "SELECT" + sessionViewColumns + sessionViewFrom + `
	WHERE s.id = ? AND (? = '' OR s.location_id = ?)`

	view, err := scanSessionView(q.QueryRowContext(ctx, query, id, locationScope, locationScope))
	if err != nil {
		return application.SessionView{}, mapSQLiteError(err)
	}
	return view, nil
}

// hasOverlap reports whether an active session on the resource intersects
// the half-open interval [start, end), ignoring excludeID.
func hasOverlap(ctx context.Context, q querier, resourceID string, start, end time.Time, excludeID string) (bool, error) {
	var exists int
	err := q.QueryRowContext(ctx, `
	SELECT EXISTS (
		SELECT 1 FROM sessions
		WHERE resource_id = ?
		  AND id != ?
		  AND status != ?
		  AND start_at < ?
		  AND end_at > ?
	)`,
		resourceID, excludeID, string(application.StatusCanceled),
		formatTime(end), formatTime(start),
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists == 1, nil
}

func (r *SessionRepository) insertAudit(ctx context.Context, tx *sql.Tx, entry audit.Entry) error {
	changes := entry.Changes
	if changes == nil {
		changes = audit.Changes{}
	}
	payload, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("encode audit changes: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO audit_logs (id, actor_id, entity_type, entity_id, action, changes, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.db.newID(), entry.ActorID, entry.EntityType, entry.EntityID,
		entry.Action, string(payload), formatTime(r.db.now()),
	)
	return mapSQLiteError(err)
}

// CreateSession inserts a session. The overlap check runs in the same
// transaction as the insert and fails with persistence.ErrConflict.
func (r *SessionRepository) CreateSession(ctx context.Context, session application.Session) (application.SessionView, error) {
	var view application.SessionView
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		conflict, err := hasOverlap(ctx, tx, session.ResourceID, session.StartAt, session.EndAt, session.ID)
		if err != nil {
			return err
		}
		if conflict {
			return persistence.ErrConflict
		}

		_, err = tx.ExecContext(ctx, `
	INSERT INTO sessions (
		id, location_id, resource_id, game_id,
		start_at, end_at, duration_min, status,
		players, contact_name, contact_phone, comment,
		canceled_reason, canceled_at, completed_at,
		created_by, updated_by, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			session.ID, session.LocationID, session.ResourceID, session.GameID,
			formatTime(session.StartAt), formatTime(session.EndAt), session.DurationMin, string(session.Status),
			nullInt(session.Players), nullString(session.ContactName), nullString(session.ContactPhone), nullString(session.Comment),
			nullString(session.CanceledReason), nullTime(session.CanceledAt), nullTime(session.CompletedAt),
			session.CreatedBy, session.UpdatedBy, formatTime(session.CreatedAt), formatTime(session.UpdatedAt),
		)
		if err != nil {
			return mapSQLiteError(err)
		}

		view, err = getSessionView(ctx, tx, session.ID, "")
		return err
	})
	if err != nil {
		return application.SessionView{}, err
	}
	return view, nil
}

// GetSession loads one session. A non-empty locationScope hides sessions
// belonging to other locations as if they did not exist.
func (r *SessionRepository) GetSession(ctx context.Context, id, locationScope string) (application.SessionView, error) {
	return getSessionView(ctx, r.db.sql, id, locationScope)
}

// UpdateSession writes the full session row. Options control whether the
// overlap check re-runs and whether an audit entry lands in the same
// transaction.
func (r *SessionRepository) UpdateSession(ctx context.Context, session application.Session, opts application.SessionWriteOptions) (application.SessionView, error) {
	var view application.SessionView
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if opts.CheckOverlap && session.Status != application.StatusCanceled {
			conflict, err := hasOverlap(ctx, tx, session.ResourceID, session.StartAt, session.EndAt, session.ID)
			if err != nil {
				return err
			}
			if conflict {
				return persistence.ErrConflict
			}
		}

		result, err := tx.ExecContext(ctx, `
	UPDATE sessions SET
		location_id = ?, resource_id = ?, game_id = ?,
		start_at = ?, end_at = ?, duration_min = ?, status = ?,
		players = ?, contact_name = ?, contact_phone = ?, comment = ?,
		canceled_reason = ?, canceled_at = ?, completed_at = ?,
		updated_by = ?, updated_at = ?
	WHERE id = ?`,
			session.LocationID, session.ResourceID, session.GameID,
			formatTime(session.StartAt), formatTime(session.EndAt), session.DurationMin, string(session.Status),
			nullInt(session.Players), nullString(session.ContactName), nullString(session.ContactPhone), nullString(session.Comment),
			nullString(session.CanceledReason), nullTime(session.CanceledAt), nullTime(session.CompletedAt),
			session.UpdatedBy, formatTime(session.UpdatedAt),
			session.ID,
		)
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

		if opts.Audit != nil {
			if err := r.insertAudit(ctx, tx, *opts.Audit); err != nil {
				return err
			}
		}

		view, err = getSessionView(ctx, tx, session.ID, "")
		return err
	})
	if err != nil {
		return application.SessionView{}, err
	}
	return view, nil
}

// DeleteSession removes a session. The audit entry is written in the same
// transaction so the trail survives the row.
func (r *SessionRepository) DeleteSession(ctx context.Context, id string, entry audit.Entry) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions WHERE id = ?", id).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return persistence.ErrNotFound
		}

		if err := r.insertAudit(ctx, tx, entry); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
		return mapSQLiteError(err)
	})
}

// ListSessionsForDay returns sessions starting within [dayStart, dayEnd),
// optionally filtered to one location. Rows come back ordered by start; the
// caller applies the full display ordering.
func (r *SessionRepository) ListSessionsForDay(ctx context.Context, dayStart, dayEnd time.Time, locationScope string) ([]application.SessionView, error) {
	query := "SELECT" + sessionViewColumns + sessionViewFrom + `
	WHERE s.start_at >= ? AND s.start_at < ?
	  AND (? = '' OR s.location_id = ?)
	ORDER BY s.start_at, s.id`

	rows, err := r.db.sql.QueryContext(ctx, query,
		formatTime(dayStart), formatTime(dayEnd), locationScope, locationScope,
	)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var views []application.SessionView
	for rows.Next() {
		view, err := scanSessionView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, rows.Err()
}
