package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection pool and hands repositories their shared
// identifier and clock sources. The pool is limited to a single connection
// so write transactions serialize instead of failing with SQLITE_BUSY.
type DB struct {
	sql   *sql.DB
	newID func() string
	now   func() time.Time
}

// Option customises a DB. Used by tests to inject deterministic ids and
// clocks.
type Option func(*DB)

// WithIDGenerator overrides the identifier source for generated rows.
func WithIDGenerator(newID func() string) Option {
	return func(db *DB) {
		if newID != nil {
			db.newID = newID
		}
	}
}

// WithClock overrides the timestamp source for generated rows.
func WithClock(now func() time.Time) Option {
	return func(db *DB) {
		if now != nil {
			db.now = now
		}
	}
}

// Open opens (creating if necessary) the SQLite database at dsn and applies
// the connection pragmas.
func Open(dsn string, opts ...Option) (*DB, error) {
	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	pool.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := pool.Exec(pragma); err != nil {
			pool.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}

	db := &DB{
		sql:   pool,
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db, nil
}

// Close closes the underlying pool.
func (db *DB) Close() error {
	return db.sql.Close()
}

// Ping verifies the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.sql.PingContext(ctx)
}

// WithTx runs fn inside a transaction, rolling back on error or panic.
func (db *DB) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
