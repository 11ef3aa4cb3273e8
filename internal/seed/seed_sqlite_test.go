package seed

import (
	"context"
	"testing"

	"github.com/example/arena-booking/internal/access"
	"github.com/example/arena-booking/internal/testfixtures"
)

func TestRunAgainstSQLite(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	seeder := New(
		harness.Resources, harness.Resources, harness.Games, harness.Users,
		harness.IDGenerator.NextFunc(), harness.Clock.NowFunc(), nil,
	)
	ctx := context.Background()
	cfg := Config{
		LocationName:  "Main Arena",
		ResourceName:  "Arena 160",
		OwnerEmail:    "owner@arena.test",
		OwnerPassword: "bootstrap-secret",
	}

	if err := seeder.Run(ctx, cfg); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if err := seeder.Run(ctx, cfg); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	location, err := harness.Resources.GetLocationByName(ctx, "Main Arena")
	if err != nil {
		t.Fatalf("GetLocationByName failed: %v", err)
	}
	if _, err := harness.Resources.GetResourceByName(ctx, location.ID, "Arena 160"); err != nil {
		t.Fatalf("GetResourceByName failed: %v", err)
	}

	games, err := harness.Games.ListGames(ctx, true)
	if err != nil {
		t.Fatalf("ListGames failed: %v", err)
	}
	if len(games) != len(defaultGames) {
		t.Fatalf("got %d active games, want %d", len(games), len(defaultGames))
	}

	owner, err := harness.Users.GetUserByEmail(ctx, "owner@arena.test")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if owner.Role != access.RoleOwner || !owner.Active {
		t.Fatalf("owner = %+v", owner)
	}
}
