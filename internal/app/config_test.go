package app

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/yungbote/transparency-backend/internal/platform/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	cfg, err := LoadConfig(logger.NewNop())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 4000 || cfg.AI.Mode != AIModeHTTP || cfg.Database.Driver != "postgres" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TokenTTL() != 168*time.Hour {
		t.Fatalf("TokenTTL=%s", cfg.TokenTTL())
	}
	if got := cfg.DatabaseURL(); got != "postgres://postgres:@localhost:5432/transparency?sslmode=disable" {
		t.Fatalf("DatabaseURL=%q", got)
	}
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
server:
  port: 8080
database:
  driver: sqlite
  sqlite_path: /tmp/t.db
ai:
  mode: heuristic
http:
  cors_origins: ["https://app.example.test"]
redis:
  addr: localhost:6379
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "9090")
	t.Setenv("INGEST_LOCK_TTL_SECONDS", "5")

	cfg, err := LoadConfig(logger.NewNop())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("env should win over file: port=%d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.SQLitePath != "/tmp/t.db" || cfg.AI.Mode != AIModeHeuristic {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.HTTP.CORSOrigins, []string{"https://app.example.test"}) {
		t.Fatalf("CORSOrigins=%v", cfg.HTTP.CORSOrigins)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.LockTTLSeconds != 5 {
		t.Fatalf("redis=%+v", cfg.Redis)
	}
	if cfg.Render.TimeoutSeconds != 30 {
		t.Fatalf("untouched default lost: %d", cfg.Render.TimeoutSeconds)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"DB_DRIVER":       "mysql",
		"AI_GATEWAY_MODE": "magic",
		"PORT":            "70000",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("CONFIG_PATH", "")
			t.Setenv(key, val)
			if _, err := LoadConfig(logger.NewNop()); err == nil {
				t.Fatalf("%s=%s should fail validation", key, val)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := LoadConfig(logger.NewNop()); err == nil {
		t.Fatal("missing config file should fail")
	}
}
