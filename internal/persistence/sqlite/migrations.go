package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	apply   string
}

var migrations = []migration{
	{
		version: 1,
		name:    "base schema",
		apply: `
CREATE TABLE locations (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	created_at TEXT NOT NULL
);

CREATE TABLE resources (
	id          TEXT PRIMARY KEY,
	location_id TEXT NOT NULL REFERENCES locations(id),
	name        TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	UNIQUE (location_id, name)
);

CREATE TABLE games (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	mode_icon  TEXT,
	is_active  INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL
);

CREATE TABLE users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL,
	location_id   TEXT REFERENCES locations(id),
	is_active     INTEGER NOT NULL DEFAULT 1,
	created_at    TEXT NOT NULL
);

CREATE TABLE sessions (
	id              TEXT PRIMARY KEY,
	location_id     TEXT NOT NULL REFERENCES locations(id),
	resource_id     TEXT NOT NULL REFERENCES resources(id),
	game_id         TEXT NOT NULL REFERENCES games(id),
	start_at        TEXT NOT NULL,
	end_at          TEXT NOT NULL,
	duration_min    INTEGER NOT NULL,
	status          TEXT NOT NULL,
	players         INTEGER,
	contact_name    TEXT,
	contact_phone   TEXT,
	comment         TEXT,
	canceled_reason TEXT,
	canceled_at     TEXT,
	completed_at    TEXT,
	created_by      TEXT NOT NULL,
	updated_by      TEXT NOT NULL,
	created_at      TEXT NOT NULL,
	updated_at      TEXT NOT NULL
);

CREATE INDEX idx_sessions_resource_start ON sessions(resource_id, start_at);
CREATE INDEX idx_sessions_location_start ON sessions(location_id, start_at);

CREATE TABLE audit_logs (
	id          TEXT PRIMARY KEY,
	actor_id    TEXT NOT NULL,
	entity_type TEXT NOT NULL,
	entity_id   TEXT NOT NULL,
	action      TEXT NOT NULL,
	changes     TEXT NOT NULL DEFAULT '{}',
	created_at  TEXT NOT NULL
);

CREATE INDEX idx_audit_entity ON audit_logs(entity_type, entity_id, created_at);
`,
	},
}

// Migrate applies pending schema migrations in version order. Applied
// versions are tracked in schema_migrations and skipped on later runs.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.sql.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version    INTEGER PRIMARY KEY,
	name       TEXT NOT NULL,
	applied_at TEXT NOT NULL
)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var applied int
		err := db.sql.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM schema_migrations WHERE version = ?", m.version,
		).Scan(&applied)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.version, err)
		}
		if applied > 0 {
			continue
		}

		err = db.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, m.apply); err != nil {
				return fmt.Errorf("apply migration %d (%s): %w", m.version, m.name, err)
			}
			_, err := tx.ExecContext(ctx,
				"INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)",
				m.version, m.name, formatTime(db.now()),
			)
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}
