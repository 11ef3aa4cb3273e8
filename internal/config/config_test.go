package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ARENA_JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned %v", err)
	}
	if cfg.HTTPPort != 8080 {
		t.Fatalf("HTTPPort = %d, want 8080", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN != "file:arena.db" {
		t.Fatalf("SQLiteDSN = %q", cfg.SQLiteDSN)
	}
	if cfg.TokenTTL.Hours() != 24 {
		t.Fatalf("TokenTTL = %v, want 24h", cfg.TokenTTL)
	}
	if cfg.SeedDefaults {
		t.Fatal("SeedDefaults should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ARENA_JWT_SECRET", "test-secret")
	t.Setenv("ARENA_HTTP_PORT", "9090")
	t.Setenv("ARENA_SQLITE_DSN", "file::memory:")
	t.Setenv("ARENA_TOKEN_TTL", "1h30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned %v", err)
	}
	if cfg.HTTPPort != 9090 {
		t.Fatalf("HTTPPort = %d, want 9090", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN != "file::memory:" {
		t.Fatalf("SQLiteDSN = %q", cfg.SQLiteDSN)
	}
	if cfg.TokenTTL.Minutes() != 90 {
		t.Fatalf("TokenTTL = %v, want 90m", cfg.TokenTTL)
	}
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("ARENA_JWT_SECRET", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail without ARENA_JWT_SECRET")
	}
	if !strings.Contains(err.Error(), "ARENA_JWT_SECRET") {
		t.Fatalf("error should name the missing variable, got %v", err)
	}
}

func TestLoadSeedRequiresOwnerCredentials(t *testing.T) {
	t.Setenv("ARENA_JWT_SECRET", "test-secret")
	t.Setenv("ARENA_SEED_DEFAULTS", "true")
	t.Setenv("ARENA_OWNER_EMAIL", "")
	t.Setenv("ARENA_OWNER_PASSWORD", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail when seeding without owner credentials")
	}
	for _, name := range []string{"ARENA_OWNER_EMAIL", "ARENA_OWNER_PASSWORD"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error should name %s, got %v", name, err)
		}
	}
}
