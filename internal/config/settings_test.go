package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", filepath.Join(t.TempDir(), "home"))
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ServiceBaseURL() != "http://127.0.0.1:8000" {
		t.Fatalf("unexpected base url: %q", cfg.ServiceBaseURL())
	}
	if cfg.HTTPTimeout() != 30*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.HTTPTimeout())
	}
	if cfg.LogLevel() != "info" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel())
	}
	if !cfg.DarkBackground() {
		t.Fatalf("expected dark background default")
	}
}

func TestLoadConfigFromTOML(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)

	dataDir := filepath.Join(home, ".landctl")
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := []byte("[service]\nbase_url = \"https://lando.example.test/\"\n\n[http]\ntimeout_seconds = 5\n\n[logging]\nlevel = \"debug\"\n")
	if err := os.WriteFile(filepath.Join(dataDir, "config.toml"), content, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ServiceBaseURL() != "https://lando.example.test" {
		t.Fatalf("unexpected base url: %q", cfg.ServiceBaseURL())
	}
	if cfg.HTTPTimeout() != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.HTTPTimeout())
	}
	if cfg.LogLevel() != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel())
	}
}

func TestResolveCSRFTokenPath(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)

	var cfg Config
	path, err := cfg.ResolveCSRFTokenPath()
	if err != nil {
		t.Fatalf("ResolveCSRFTokenPath default: %v", err)
	}
	if want := filepath.Join(home, ".landctl", "csrf_token"); path != want {
		t.Fatalf("unexpected default path: got=%q want=%q", path, want)
	}

	cfg.Auth.CSRFTokenPath = "~/secrets/csrf"
	path, err = cfg.ResolveCSRFTokenPath()
	if err != nil {
		t.Fatalf("ResolveCSRFTokenPath tilde: %v", err)
	}
	if want := filepath.Join(home, "secrets", "csrf"); path != want {
		t.Fatalf("unexpected tilde path: got=%q want=%q", path, want)
	}

	cfg.Auth.CSRFTokenPath = "relative_token"
	path, err = cfg.ResolveCSRFTokenPath()
	if err != nil {
		t.Fatalf("ResolveCSRFTokenPath relative: %v", err)
	}
	if want := filepath.Join(home, ".landctl", "relative_token"); path != want {
		t.Fatalf("unexpected relative path: got=%q want=%q", path, want)
	}
}

func TestHTTPTimeoutFloorsInvalidValues(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{TimeoutSeconds: -3}}
	if cfg.HTTPTimeout() != 30*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.HTTPTimeout())
	}
}
