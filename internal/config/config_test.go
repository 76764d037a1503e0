package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsOnMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "http://localhost:8000/api/v1" {
		t.Errorf("api_url = %q", cfg.APIURL)
	}
	if cfg.GetPageSize() != 5 {
		t.Errorf("page size = %d", cfg.GetPageSize())
	}
	if cfg.DefaultTopic != "technology" || cfg.DefaultCategory != "general" {
		t.Errorf("defaults = %q/%q", cfg.DefaultTopic, cfg.DefaultCategory)
	}
	if len(cfg.Topics) == 0 || len(cfg.Categories) == 0 {
		t.Error("expected seeded topics and categories")
	}

	// First run writes the defaults file for later editing.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected defaults written to %s: %v", path, err)
	}
}

func TestLoadPartialFileBackfills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_url: http://10.0.0.5:8000/api/v1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "http://10.0.0.5:8000/api/v1" {
		t.Errorf("api_url = %q", cfg.APIURL)
	}
	if cfg.DefaultTopic != "technology" {
		t.Errorf("default_topic = %q, want backfilled default", cfg.DefaultTopic)
	}
}

func TestLoadRejectsBadScheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_url: ftp://example.com\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected scheme validation error")
	}
}

func TestLoadRejectsUnknownDefaultCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "default_category: blorp\ncategories:\n  - general\n  - sports\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected default_category validation error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("NEWSLINE_API_URL", "http://override:9000/api/v1")
	t.Setenv("NEWSLINE_ADMIN_KEY", "supersecret")
	t.Setenv("NEWSLINE_DEBUG", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "http://override:9000/api/v1" {
		t.Errorf("api_url = %q, env should win", cfg.APIURL)
	}
	if cfg.AdminKey != "supersecret" {
		t.Errorf("admin_key = %q", cfg.AdminKey)
	}
	if !cfg.Debug {
		t.Error("debug should be on")
	}
}

func TestTimeoutDuration(t *testing.T) {
	cfg := &Config{RequestTimeout: "30s"}
	if got := cfg.TimeoutDuration(); got != 30*time.Second {
		t.Errorf("timeout = %v", got)
	}
	cfg.RequestTimeout = "garbage"
	if got := cfg.TimeoutDuration(); got != 15*time.Second {
		t.Errorf("fallback timeout = %v, want 15s", got)
	}
}
