package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestSetupLoggerWithWriters(t *testing.T) {
	var stderr, file bytes.Buffer

	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)
	logger.Info("pair drawn", "note_a", "zettel/alpha.md")
	logger.Debug("filtered out")

	// Both sinks receive the record, text on stderr and JSON in the file.
	if !strings.Contains(stderr.String(), "pair drawn") {
		t.Errorf("stderr missing record, got %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "note_a=zettel/alpha.md") {
		t.Errorf("stderr missing attribute, got %q", stderr.String())
	}

	var entry map[string]any
	if err := json.Unmarshal(file.Bytes(), &entry); err != nil {
		t.Fatalf("file sink is not JSON: %v\ngot %q", err, file.String())
	}
	if entry["msg"] != "pair drawn" {
		t.Errorf("file msg = %v, want pair drawn", entry["msg"])
	}
	if entry["note_a"] != "zettel/alpha.md" {
		t.Errorf("file note_a = %v, want zettel/alpha.md", entry["note_a"])
	}

	// Level filtering applies to both handlers.
	if strings.Contains(stderr.String(), "filtered out") || strings.Contains(file.String(), "filtered out") {
		t.Error("debug record leaked past the INFO level")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
