package config_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/iho/cashflow/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.TransferTimeout != 10*time.Second {
		t.Fatalf("expected default transfer timeout 10s, got %s", cfg.TransferTimeout)
	}

	if cfg.UserCacheTTL != 5*time.Minute {
		t.Fatalf("expected default user cache TTL 5m, got %s", cfg.UserCacheTTL)
	}

	if cfg.MigrateOnStart {
		t.Fatalf("expected migrations on start to be off by default")
	}

	if cfg.DatabaseMaxRetries != 3 || cfg.DatabaseRetryMaxElapsed != 10*time.Second {
		t.Fatalf("unexpected retry defaults: %d %s", cfg.DatabaseMaxRetries, cfg.DatabaseRetryMaxElapsed)
	}

	if err := cfg.Validate(); !errors.Is(err, config.ErrMissingJWTSecret) {
		t.Fatalf("expected missing secret error, got %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("JWT_SECRET", "top-secret")
	t.Setenv("TRANSFER_TIMEOUT", "3s")
	t.Setenv("MIGRATE_ON_START", "true")
	t.Setenv("MIGRATIONS_PATH", "/srv/migrations")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if cfg.TransferTimeout != 3*time.Second {
		t.Fatalf("expected transfer timeout override, got %s", cfg.TransferTimeout)
	}

	if !cfg.MigrateOnStart || cfg.MigrationsPath != "/srv/migrations" {
		t.Fatalf("expected migration settings to be set, got %v %s", cfg.MigrateOnStart, cfg.MigrationsPath)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	original := os.Getenv("HTTP_READ_TIMEOUT")
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")
	t.Cleanup(func() {
		t.Setenv("HTTP_READ_TIMEOUT", original)
	})

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestValidateRejectsNegativeRetries(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret", DatabaseMaxRetries: -1}

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for negative retry count")
	}
}
