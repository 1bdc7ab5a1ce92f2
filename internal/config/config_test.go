package config

import (
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("RETRY_INITIAL_DELAY", "")
	t.Setenv("DB_ENABLED", "")
	t.Setenv("QDRANT_URL", "")
	t.Setenv("GRADING_TOP_N", "")
	t.Setenv("SESSION_TTL", "")

	cfg := Load()
	if cfg.Server.Port != "3000" {
		t.Fatalf("port = %q", cfg.Server.Port)
	}
	if cfg.Database.Enabled {
		t.Fatalf("database should be disabled by default")
	}
	if cfg.Qdrant.Enabled() {
		t.Fatalf("qdrant should be disabled without a URL")
	}
	if cfg.Grading.TopN != 5 {
		t.Fatalf("top n = %d", cfg.Grading.TopN)
	}
	if cfg.Grading.RetryInitialDelay != 2*time.Second {
		t.Fatalf("retry delay = %v", cfg.Grading.RetryInitialDelay)
	}
	if cfg.Grading.SessionTTL != 24*time.Hour {
		t.Fatalf("session ttl = %v", cfg.Grading.SessionTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("QDRANT_URL", "http://qdrant:6334")
	t.Setenv("GEMINI_TEMPERATURE", "0.7")
	t.Setenv("GRADING_TOP_N", "10")
	t.Setenv("RETRY_INITIAL_DELAY", "500ms")
	t.Setenv("MAX_FILE_SIZE", "1024")

	cfg := Load()
	if cfg.Server.Port != "8080" || !cfg.Database.Enabled || !cfg.Qdrant.Enabled() {
		t.Fatalf("overrides ignored: %+v", cfg)
	}
	if cfg.Gemini.Temperature < 0.69 || cfg.Gemini.Temperature > 0.71 {
		t.Fatalf("temperature = %v", cfg.Gemini.Temperature)
	}
	if cfg.Grading.TopN != 10 || cfg.Grading.RetryInitialDelay != 500*time.Millisecond {
		t.Fatalf("grading = %+v", cfg.Grading)
	}
	if cfg.Storage.MaxFileSize != 1024 {
		t.Fatalf("max file size = %d", cfg.Storage.MaxFileSize)
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("GRADING_TOP_N", "many")
	t.Setenv("DB_ENABLED", "perhaps")
	t.Setenv("RETRY_INITIAL_DELAY", "soon")

	cfg := Load()
	if cfg.Grading.TopN != 5 || cfg.Database.Enabled || cfg.Grading.RetryInitialDelay != 2*time.Second {
		t.Fatalf("invalid values not replaced by defaults: %+v", cfg)
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Host: "db", Port: "5433", User: "u", Password: "p", DBName: "n"}}
	want := "host=db port=5433 user=u password=p dbname=n sslmode=disable"
	if got := cfg.GetDatabaseDSN(); got != want {
		t.Fatalf("dsn = %q", got)
	}
}

func TestInitLogger(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	InitLogger(&Config{Log: LogConfig{Level: "debug"}})
	if log.GetLevel() != log.DebugLevel {
		t.Fatalf("level = %v", log.GetLevel())
	}
	InitLogger(&Config{Log: LogConfig{Level: "loud"}})
	if log.GetLevel() != log.InfoLevel {
		t.Fatalf("invalid level should fall back to info, got %v", log.GetLevel())
	}
}
