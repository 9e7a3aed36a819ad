package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("TODOS_PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DB.Driver != DriverMemory {
		t.Fatalf("driver=%q", cfg.DB.Driver)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("addr=%q", cfg.Addr())
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("log level=%q", cfg.LogLevel)
	}
	if cfg.HTTP.ReadHeaderTimeout != 5*time.Second || cfg.HTTP.ShutdownTimeout != 5*time.Second {
		t.Fatalf("unexpected timeouts: %+v", cfg.HTTP)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("TODOS_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_WRITE_TIMEOUT", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DB.Driver != DriverPgx || cfg.Addr() != ":9000" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.HTTP.WriteTimeout != 30*time.Second {
		t.Fatalf("write timeout=%v", cfg.HTTP.WriteTimeout)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string][2]string{
		"driver":   {"DB_DRIVER", "sqlite3"},
		"level":    {"LOG_LEVEL", "chatty"},
		"duration": {"SHUTDOWN_TIMEOUT", "soon"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
		})
	}
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "5433", User: "u", Password: "p@ss", DBName: "todos", SSLMode: "disable"}
	if got, want := db.DSN(), "postgres://u:p%40ss@db:5433/todos?sslmode=disable"; got != want {
		t.Fatalf("dsn=%q want %q", got, want)
	}

	db.URL = "postgres://other/db"
	if db.DSN() != "postgres://other/db" {
		t.Fatalf("DATABASE_URL should win, got %q", db.DSN())
	}
}
