package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tc := range tests {
		if got := parseLevel(tc.in); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestInitWritesToConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	if err := Init(dir, "debug", "text"); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	defer Close()

	slog.Debug("hello from test", "key", "value")

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("expected log file: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("expected message in log, got %q", data)
	}

	info, _ := os.Stat(filepath.Join(dir, FileName))
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 perms, got %o", info.Mode().Perm())
	}
}

func TestInitRespectsLevel(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, "warn", "text"); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	defer Close()

	slog.Info("should be filtered")
	slog.Warn("should appear")

	data, _ := os.ReadFile(filepath.Join(dir, FileName))
	if strings.Contains(string(data), "should be filtered") {
		t.Error("info message written at warn level")
	}
	if !strings.Contains(string(data), "should appear") {
		t.Error("warn message missing")
	}
}

func TestInitJSONFormat(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, "info", "json"); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	slog.Info("structured", "user_id", "42")
	Close()

	data, _ := os.ReadFile(filepath.Join(dir, FileName))
	line := bytes.TrimSpace(data)
	var entry map[string]any
	if err := json.Unmarshal(line, &entry); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", line, err)
	}
	if entry["msg"] != "structured" || entry["user_id"] != "42" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestInitWithoutDirDiscards(t *testing.T) {
	if err := Init("", "debug", "text"); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	defer Close()

	// Must not panic or write anywhere
	slog.Info("discarded")
}
