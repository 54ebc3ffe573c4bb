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
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "warn", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l.Info("ignored")
	l.Warn("plan degenerado", "installments", 12)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected only the warning to be written, got %d lines", len(lines))
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if entry["msg"] != "plan degenerado" || entry["installments"] != float64(12) {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Format: "text"}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Info("hola", "k", "v")
	if !strings.Contains(buf.String(), "k=v") {
		t.Errorf("expected text output, got %q", buf.String())
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	var buf bytes.Buffer
	l, err := New(Config{Output: "both", FilePath: path, MaxSize: 1}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Info("both")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected the log file to exist: %v", err)
	}
	if !strings.Contains(string(data), "both") || !strings.Contains(buf.String(), "both") {
		t.Errorf("expected the entry in both outputs")
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(Config{Output: "file"}, &bytes.Buffer{}); err == nil {
		t.Errorf("expected an error without a file path")
	}
	if _, err := New(Config{Output: "syslog"}, &bytes.Buffer{}); err == nil {
		t.Errorf("expected an error for an unknown output")
	}
}
