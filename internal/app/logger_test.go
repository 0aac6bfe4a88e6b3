package app

import (
	"log/slog"
	"testing"

	"github.com/sipalaciosv/dupe/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"garbage", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"json", "text", "unknown"} {
		logger := NewLogger(config.LogConfig{Level: "info", Format: format})
		if logger == nil {
			t.Fatalf("NewLogger(%q) returned nil", format)
		}
	}
}
