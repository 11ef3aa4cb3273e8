// Package config loads runtime configuration from the process environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures environment driven configuration for the booking service.
type Config struct {
	HTTPPort  int           `env:"ARENA_HTTP_PORT" envDefault:"8080"`
	SQLiteDSN string        `env:"ARENA_SQLITE_DSN" envDefault:"file:arena.db"`
	JWTSecret string        `env:"ARENA_JWT_SECRET"`
	TokenTTL  time.Duration `env:"ARENA_TOKEN_TTL" envDefault:"24h"`

	// Bootstrap data applied at startup when SeedDefaults is set.
	SeedDefaults    bool   `env:"ARENA_SEED_DEFAULTS" envDefault:"false"`
	OwnerEmail      string `env:"ARENA_OWNER_EMAIL"`
	OwnerPassword   string `env:"ARENA_OWNER_PASSWORD"`
	DefaultLocation string `env:"ARENA_DEFAULT_LOCATION" envDefault:"Main Arena"`
	DefaultResource string `env:"ARENA_DEFAULT_RESOURCE" envDefault:"Arena 160"`
}

// Load parses configuration from the environment and validates required
// values, reporting every missing or invalid variable at once.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	var missing, invalid []string

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		missing = append(missing, "ARENA_JWT_SECRET")
	}
	if cfg.HTTPPort <= 0 {
		invalid = append(invalid, "ARENA_HTTP_PORT")
	}
	if cfg.TokenTTL <= 0 {
		invalid = append(invalid, "ARENA_TOKEN_TTL")
	}
	if cfg.SeedDefaults {
		if strings.TrimSpace(cfg.OwnerEmail) == "" {
			missing = append(missing, "ARENA_OWNER_EMAIL")
		}
		if cfg.OwnerPassword == "" {
			missing = append(missing, "ARENA_OWNER_PASSWORD")
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
