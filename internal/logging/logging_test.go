package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerWritesLogfmtLine(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Info)
	logger.Info("submit accepted", F("repo", "lando-repo"), F("pull", 42), F("reason", "head moved"))

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, "level=info") {
		t.Fatalf("expected level field, got %q", line)
	}
	if !strings.Contains(line, "msg=\"submit accepted\"") {
		t.Fatalf("expected quoted message, got %q", line)
	}
	if !strings.Contains(line, "repo=lando-repo") || !strings.Contains(line, "pull=42") {
		t.Fatalf("expected fields, got %q", line)
	}
	if !strings.Contains(line, "reason=\"head moved\"") {
		t.Fatalf("expected quoted value with space, got %q", line)
	}
}

func TestLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Warn)
	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug and info suppressed, got %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("expected warn line, got %q", out)
	}
	if !logger.Enabled(Error) {
		t.Fatalf("expected error level enabled at warn threshold")
	}
	if logger.Enabled(Debug) {
		t.Fatalf("expected debug level disabled at warn threshold")
	}
}

func TestWithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Debug).With(F("request_id", "abc123"))
	logger.Debug("fetching checks")

	if !strings.Contains(buf.String(), "request_id=abc123") {
		t.Fatalf("expected carried field, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		"  WARN ": Warn,
		"warning": Warn,
		"error":   Error,
		"":        Info,
		"bogus":   Info,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestNewFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ui.log")

	logger, closer, err := NewFileLogger(path, Info)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	logger.Info("first")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	logger, closer, err = NewFileLogger(path, Info)
	if err != nil {
		t.Fatalf("NewFileLogger reopen: %v", err)
	}
	logger.Info("second")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "first") || !strings.Contains(string(data), "second") {
		t.Fatalf("expected both lines appended, got %q", string(data))
	}
}

func TestNewRequestIDUnique(t *testing.T) {
	a := NewRequestID()
	b := NewRequestID()
	if a == "" || a == b {
		t.Fatalf("expected distinct ids, got %q and %q", a, b)
	}
}
