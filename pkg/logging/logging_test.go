package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("json format emits JSON", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

		log.Info("hello", "key", "value")

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("expected JSON log entry: %v", err)
		}
		if entry["msg"] != "hello" {
			t.Errorf("expected msg=hello, got %v", entry["msg"])
		}
		if entry["key"] != "value" {
			t.Errorf("expected key=value, got %v", entry["key"])
		}
	})

	t.Run("text format emits key=value", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(Config{Level: LevelInfo, Format: FormatText, Output: &buf})

		log.Warn("careful")

		if !strings.Contains(buf.String(), "msg=careful") {
			t.Errorf("expected text output, got %q", buf.String())
		}
	})

	t.Run("level filters output", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(Config{Level: LevelWarn, Output: &buf})

		log.Info("dropped")
		if buf.Len() != 0 {
			t.Errorf("expected info to be filtered, got %q", buf.String())
		}
	})
}

func TestNop(t *testing.T) {
	// Must not panic and must not write anywhere visible.
	Nop().Error("ignored")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
