package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"SERVER_ADDRESS", "SHUTDOWN_TIMEOUT", "DB_DRIVER", "DB_DSN", "UPSERT_CHUNK_SIZE", "SEED_BANKS", "CORS_ORIGINS", "LLM_API_KEY"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.ServerAddress != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.ServerAddress)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected 10s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("expected sqlite, got %q", cfg.DBDriver)
	}
	if cfg.DBDSN != "" {
		t.Errorf("expected empty DSN so the driver picks its default, got %q", cfg.DBDSN)
	}
	if cfg.UpsertChunkSize != 50 {
		t.Errorf("expected chunk size 50, got %d", cfg.UpsertChunkSize)
	}
	if !cfg.SeedBanks {
		t.Error("expected seeding enabled by default")
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("expected 2 default origins, got %v", cfg.CORSOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("REVIEW_WORKERS", "5")
	t.Setenv("SEED_BANKS", "false")
	t.Setenv("CORS_ORIGINS", " http://a.test , ,http://b.test")

	cfg := Load()
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("expected 3s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("expected postgres, got %q", cfg.DBDriver)
	}
	if cfg.ReviewWorkers != 5 {
		t.Errorf("expected 5 workers, got %d", cfg.ReviewWorkers)
	}
	if cfg.SeedBanks {
		t.Error("expected seeding disabled")
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "http://a.test" || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("unexpected origins %v", cfg.CORSOrigins)
	}
}

func TestGetenvBool_InvalidFallsBack(t *testing.T) {
	t.Setenv("FLAG", "maybe")
	if !getenvBool("FLAG", true) {
		t.Error("expected fallback for invalid bool")
	}
}
