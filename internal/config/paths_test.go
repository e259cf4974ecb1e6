package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestPaths(t *testing.T) {
	t.Setenv("HOME", filepath.Join(t.TempDir(), "home"))

	dataDir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if !strings.HasSuffix(dataDir, filepath.Join(".landctl")) {
		t.Fatalf("unexpected data dir: %s", dataDir)
	}

	configPath, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}
	if !strings.HasSuffix(configPath, filepath.Join(".landctl", "config.toml")) {
		t.Fatalf("unexpected config path: %s", configPath)
	}

	tokenPath, err := TokenPath()
	if err != nil {
		t.Fatalf("TokenPath: %v", err)
	}
	if !strings.HasSuffix(tokenPath, filepath.Join(".landctl", "csrf_token")) {
		t.Fatalf("unexpected token path: %s", tokenPath)
	}

	historyPath, err := HistoryDBPath()
	if err != nil {
		t.Fatalf("HistoryDBPath: %v", err)
	}
	if !strings.HasSuffix(historyPath, filepath.Join(".landctl", "history.db")) {
		t.Fatalf("unexpected history path: %s", historyPath)
	}

	logPath, err := UILogPath()
	if err != nil {
		t.Fatalf("UILogPath: %v", err)
	}
	if !strings.HasSuffix(logPath, filepath.Join(".landctl", "ui.log")) {
		t.Fatalf("unexpected log path: %s", logPath)
	}
}
