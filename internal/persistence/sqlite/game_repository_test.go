package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/example/arena-booking/internal/application"
	"github.com/example/arena-booking/internal/persistence"
)

func TestGameRepository_UniqueName(t *testing.T) {
	db := newTestDB(t)
	repo := NewGameRepository(db)
	ctx := context.Background()

	if _, err := repo.CreateGame(ctx, application.Game{ID: "game-1", Name: "Laser Quest", IsActive: true, CreatedAt: fixedNow}); err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}

	_, err := repo.CreateGame(ctx, application.Game{ID: "game-2", Name: "Laser Quest", IsActive: true, CreatedAt: fixedNow})
	if !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
}

func TestGameRepository_ListGames(t *testing.T) {
	db := newTestDB(t)
	repo := NewGameRepository(db)
	ctx := context.Background()

	icon := "vr-headset"
	seed := []application.Game{
		{ID: "game-1", Name: "Zombie Run", ModeIcon: &icon, IsActive: true, CreatedAt: fixedNow},
		{ID: "game-2", Name: "Laser Quest", IsActive: true, CreatedAt: fixedNow},
		{ID: "game-3", Name: "Retired", IsActive: false, CreatedAt: fixedNow},
	}
	for _, game := range seed {
		if _, err := repo.CreateGame(ctx, game); err != nil {
			t.Fatalf("CreateGame(%s) failed: %v", game.Name, err)
		}
	}

	all, err := repo.ListGames(ctx, false)
	if err != nil {
		t.Fatalf("ListGames failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d games, want 3", len(all))
	}
	if all[0].Name != "Laser Quest" || all[2].Name != "Zombie Run" {
		t.Errorf("not ordered by name: %v, %v, %v", all[0].Name, all[1].Name, all[2].Name)
	}

	active, err := repo.ListGames(ctx, true)
	if err != nil {
		t.Fatalf("ListGames failed: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("got %d active games, want 2", len(active))
	}

	stored, err := repo.GetGameByName(ctx, "Zombie Run")
	if err != nil {
		t.Fatalf("GetGameByName failed: %v", err)
	}
	if stored.ModeIcon == nil || *stored.ModeIcon != icon {
		t.Errorf("ModeIcon = %v, want %q", stored.ModeIcon, icon)
	}
}

func TestGameRepository_DeleteReferencedGame(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	sessions := NewSessionRepository(db)
	games := NewGameRepository(db)
	ctx := context.Background()

	if _, err := sessions.CreateSession(ctx, testSession("sess-1", at(10, 0), 60)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	err := games.DeleteGame(ctx, "game-1")
	if !errors.Is(err, persistence.ErrForeignKeyViolation) {
		t.Fatalf("err = %v, want ErrForeignKeyViolation", err)
	}
}

func TestGameRepository_UpdateMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewGameRepository(db)

	_, err := repo.UpdateGame(context.Background(), application.Game{ID: "missing", Name: "Ghost"})
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
