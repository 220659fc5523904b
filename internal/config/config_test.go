package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"APP_ENV", "PORT", "DB_DRIVER", "DB_DSN", "REDIS_ADDR", "REDIS_TTL", "LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" || cfg.DBDriver != "sqlite" || cfg.DBDSN != "./dev.db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.RedisAddr != "" || cfg.RedisTTL != 720*time.Hour {
		t.Fatalf("unexpected redis defaults: %+v", cfg)
	}
	if !cfg.IsDev() {
		t.Fatalf("expected dev mode by default")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_CONNECT_TIMEOUT", "5s")
	t.Setenv("ADMIN_LOGIN", "admin")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.IsDev() || cfg.Port != "9090" || cfg.DBDriver != "postgres" || cfg.DBTimeout != 5*time.Second {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.AdminLogin != "admin" {
		t.Fatalf("AdminLogin = %q", cfg.AdminLogin)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_CONNECT_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestWarnings(t *testing.T) {
	if got := (Config{}).Warnings(); len(got) != 3 {
		t.Fatalf("expected 3 warnings, got %v", got)
	}
	full := Config{AdminLogin: "a", AdminPassword: "b", SessionSecret: "c"}
	if got := full.Warnings(); len(got) != 0 {
		t.Fatalf("expected no warnings, got %v", got)
	}
}
