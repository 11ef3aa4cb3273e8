package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/arena-booking/internal/application"
	"github.com/example/arena-booking/internal/audit"
	"github.com/example/arena-booking/internal/persistence"
)

func at(hour, min int) time.Time {
	return time.Date(2024, time.March, 10, hour, min, 0, 0, time.UTC)
}

func TestSessionRepository_CreateSession(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	view, err := repo.CreateSession(ctx, testSession("sess-1", at(10, 0), 60))
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if view.ResourceName != "Arena 160" {
		t.Errorf("ResourceName = %q, want 'Arena 160'", view.ResourceName)
	}
	if view.GameName != "Laser Quest" {
		t.Errorf("GameName = %q, want 'Laser Quest'", view.GameName)
	}
	if view.GameIcon != "" {
		t.Errorf("GameIcon = %q, want empty string", view.GameIcon)
	}
	if !view.StartAt.Equal(at(10, 0)) || !view.EndAt.Equal(at(11, 0)) {
		t.Errorf("window = [%v, %v)", view.StartAt, view.EndAt)
	}
}

func TestSessionRepository_CreateSession_UnknownResource(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewSessionRepository(db)

	session := testSession("sess-1", at(10, 0), 60)
	session.ResourceID = "res-missing"

	_, err := repo.CreateSession(context.Background(), session)
	if !errors.Is(err, persistence.ErrForeignKeyViolation) {
		t.Fatalf("err = %v, want ErrForeignKeyViolation", err)
	}
}

func TestSessionRepository_OverlapEnforcement(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	if _, err := repo.CreateSession(ctx, testSession("sess-1", at(10, 0), 60)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	t.Run("overlapping insert conflicts", func(t *testing.T) {
		_, err := repo.CreateSession(ctx, testSession("sess-2", at(10, 30), 60))
		if !errors.Is(err, persistence.ErrConflict) {
			t.Fatalf("err = %v, want ErrConflict", err)
		}
	})

	t.Run("touching boundary is allowed", func(t *testing.T) {
		if _, err := repo.CreateSession(ctx, testSession("sess-3", at(11, 0), 60)); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
	})

	t.Run("other resource does not collide", func(t *testing.T) {
		session := testSession("sess-4", at(10, 0), 60)
		session.LocationID = "loc-2"
		session.ResourceID = "res-2"
		if _, err := repo.CreateSession(ctx, session); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
	})

	t.Run("canceled session releases the window", func(t *testing.T) {
		canceled := testSession("sess-1", at(10, 0), 60)
		canceled.Status = application.StatusCanceled
		if _, err := repo.UpdateSession(ctx, canceled, application.SessionWriteOptions{}); err != nil {
			t.Fatalf("UpdateSession failed: %v", err)
		}

		if _, err := repo.CreateSession(ctx, testSession("sess-5", at(10, 0), 60)); err != nil {
			t.Fatalf("CreateSession over canceled window failed: %v", err)
		}
	})
}

func TestSessionRepository_UpdateExcludesSelf(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	if _, err := repo.CreateSession(ctx, testSession("sess-1", at(10, 0), 60)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	moved := testSession("sess-1", at(10, 30), 60)
	view, err := repo.UpdateSession(ctx, moved, application.SessionWriteOptions{CheckOverlap: true})
	if err != nil {
		t.Fatalf("UpdateSession failed: %v", err)
	}
	if !view.StartAt.Equal(at(10, 30)) {
		t.Errorf("StartAt = %v, want %v", view.StartAt, at(10, 30))
	}
}

func TestSessionRepository_UpdateWritesAuditAtomically(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewSessionRepository(db)
	audits := NewAuditRepository(db)
	ctx := context.Background()

	if _, err := repo.CreateSession(ctx, testSession("sess-1", at(10, 0), 60)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	comment := "birthday group"
	updated := testSession("sess-1", at(10, 0), 60)
	updated.Comment = &comment
	entry := audit.NewEntry("user-1", "session", "sess-1", "update", audit.Changes{
		"comment": audit.Change{From: "", To: comment},
	})

	if _, err := repo.UpdateSession(ctx, updated, application.SessionWriteOptions{Audit: &entry}); err != nil {
		t.Fatalf("UpdateSession failed: %v", err)
	}

	records, err := audits.ListByEntity(ctx, "session", "sess-1")
	if err != nil {
		t.Fatalf("ListByEntity failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d audit records, want 1", len(records))
	}
	record := records[0]
	if record.Action != "update" || record.ActorID != "user-1" {
		t.Errorf("record = %+v", record.Entry)
	}
	change, ok := record.Changes["comment"].(map[string]any)
	if !ok {
		t.Fatalf("comment change missing: %v", record.Changes)
	}
	if change["from"] != "" || change["to"] != comment {
		t.Errorf("comment diff = %v", change)
	}
	if !record.CreatedAt.Equal(fixedNow) {
		t.Errorf("CreatedAt = %v, want %v", record.CreatedAt, fixedNow)
	}
}

func TestSessionRepository_FailedUpdateWritesNoAudit(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewSessionRepository(db)
	audits := NewAuditRepository(db)
	ctx := context.Background()

	if _, err := repo.CreateSession(ctx, testSession("sess-1", at(10, 0), 60)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if _, err := repo.CreateSession(ctx, testSession("sess-2", at(12, 0), 60)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	moved := testSession("sess-2", at(10, 30), 60)
	entry := audit.NewEntry("user-1", "session", "sess-2", "update", audit.Changes{
		"start_at": audit.Change{From: at(12, 0).Format(time.RFC3339), To: at(10, 30).Format(time.RFC3339)},
	})
	_, err := repo.UpdateSession(ctx, moved, application.SessionWriteOptions{CheckOverlap: true, Audit: &entry})
	if !errors.Is(err, persistence.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}

	records, err := audits.ListByEntity(ctx, "session", "sess-2")
	if err != nil {
		t.Fatalf("ListByEntity failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("rolled back update left %d audit records", len(records))
	}
}

func TestSessionRepository_GetSessionScope(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	if _, err := repo.CreateSession(ctx, testSession("sess-1", at(10, 0), 60)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if _, err := repo.GetSession(ctx, "sess-1", "loc-1"); err != nil {
		t.Fatalf("scoped get failed: %v", err)
	}
	if _, err := repo.GetSession(ctx, "sess-1", "loc-2"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("foreign scope err = %v, want ErrNotFound", err)
	}
	if _, err := repo.GetSession(ctx, "sess-1", ""); err != nil {
		t.Fatalf("unscoped get failed: %v", err)
	}
}

func TestSessionRepository_DeleteSession(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewSessionRepository(db)
	audits := NewAuditRepository(db)
	ctx := context.Background()

	if _, err := repo.CreateSession(ctx, testSession("sess-1", at(10, 0), 60)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	entry := audit.NewEntry("user-1", "session", "sess-1", "delete", audit.Changes{"reason": "duplicate"})
	if err := repo.DeleteSession(ctx, "sess-1", entry); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}

	if _, err := repo.GetSession(ctx, "sess-1", ""); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("deleted session still readable: %v", err)
	}

	records, err := audits.ListByEntity(ctx, "session", "sess-1")
	if err != nil {
		t.Fatalf("ListByEntity failed: %v", err)
	}
	if len(records) != 1 || records[0].Action != "delete" {
		t.Fatalf("audit trail = %+v", records)
	}
	if records[0].Changes["reason"] != "duplicate" {
		t.Fatalf("reason not recorded: %v", records[0].Changes)
	}

	if err := repo.DeleteSession(ctx, "sess-1", entry); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestSessionRepository_ListSessionsForDay(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	inside := testSession("sess-1", at(10, 0), 60)
	lateNight := testSession("sess-2", time.Date(2024, time.March, 10, 23, 30, 0, 0, time.UTC), 60)
	nextDay := testSession("sess-3", time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), 60)
	nextDay.ResourceID = "res-2"
	nextDay.LocationID = "loc-2"
	otherLocation := testSession("sess-4", at(14, 0), 60)
	otherLocation.ResourceID = "res-2"
	otherLocation.LocationID = "loc-2"

	for _, session := range []application.Session{inside, lateNight, nextDay, otherLocation} {
		if _, err := repo.CreateSession(ctx, session); err != nil {
			t.Fatalf("CreateSession(%s) failed: %v", session.ID, err)
		}
	}

	dayStart := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	all, err := repo.ListSessionsForDay(ctx, dayStart, dayEnd, "")
	if err != nil {
		t.Fatalf("ListSessionsForDay failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d sessions, want 3 (next-day start excluded)", len(all))
	}

	scoped, err := repo.ListSessionsForDay(ctx, dayStart, dayEnd, "loc-2")
	if err != nil {
		t.Fatalf("ListSessionsForDay failed: %v", err)
	}
	if len(scoped) != 1 || scoped[0].ID != "sess-4" {
		t.Fatalf("scoped sessions = %+v", scoped)
	}
}
