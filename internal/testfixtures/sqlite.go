package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/arena-booking/internal/persistence/sqlite"
)

// SQLiteHarness bundles repositories backed by a temporary SQLite database
// for integration-style tests.
type SQLiteHarness struct {
	DB        *sqlite.DB
	Sessions  *sqlite.SessionRepository
	Resources *sqlite.ResourceRepository
	Games     *sqlite.GameRepository
	Users     *sqlite.UserRepository
	Audits    *sqlite.AuditRepository

	Clock       *Clock
	IDGenerator *IDGenerator
}

// NewSQLiteHarness opens a migrated database under t.TempDir with a
// deterministic clock and id source. The database is closed when the test
// finishes.
func NewSQLiteHarness(t *testing.T) *SQLiteHarness {
	t.Helper()

	clock := NewClock(ReferenceTime())
	ids := NewIDGenerator("fixture")

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "arena_fixture.db"),
		sqlite.WithClock(clock.NowFunc()),
		sqlite.WithIDGenerator(ids.NextFunc()),
	)
	if err != nil {
		t.Fatalf("open fixture database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate fixture database: %v", err)
	}

	return &SQLiteHarness{
		DB:          db,
		Sessions:    sqlite.NewSessionRepository(db),
		Resources:   sqlite.NewResourceRepository(db),
		Games:       sqlite.NewGameRepository(db),
		Users:       sqlite.NewUserRepository(db),
		Audits:      sqlite.NewAuditRepository(db),
		Clock:       clock,
		IDGenerator: ids,
	}
}
