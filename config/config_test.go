package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Database.Path != "books.db" {
		t.Errorf("expected default path books.db, got %q", cfg.Database.Path)
	}
	if cfg.Database.Driver != "sqlite3" {
		t.Errorf("expected default driver sqlite3, got %q", cfg.Database.Driver)
	}
	if cfg.Database.MaxOpenConns != 1 {
		t.Errorf("expected a single open connection, got %d", cfg.Database.MaxOpenConns)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/override.db")
	t.Setenv("DB_BUSY_TIMEOUT", "250")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("expected env path, got %q", cfg.Database.Path)
	}
	if cfg.Database.BusyTimeout != 250 {
		t.Errorf("expected busy timeout 250, got %d", cfg.Database.BusyTimeout)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.Log.Level)
	}
	if cfg.Database.MaxOpenConns != 1 {
		t.Errorf("invalid int should keep default, got %d", cfg.Database.MaxOpenConns)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ebookstore.yaml")
	data := []byte(`
database:
  path: inventory.db
  driver: sqlite
log:
  format: json
menu:
  charset: windows-1251
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DB_DRIVER", "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Path != "inventory.db" {
		t.Errorf("expected path from file, got %q", cfg.Database.Path)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected driver from file, got %q", cfg.Database.Driver)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("expected json format, got %q", cfg.Log.Format)
	}
	if cfg.Menu.Charset != "windows-1251" {
		t.Errorf("expected charset from file, got %q", cfg.Menu.Charset)
	}
	// untouched keys keep their defaults
	if cfg.Database.BusyTimeout != 5000 {
		t.Errorf("expected default busy timeout, got %d", cfg.Database.BusyTimeout)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("database: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
