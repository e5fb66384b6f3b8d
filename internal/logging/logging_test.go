package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "DEBUG", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: " warn ", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := LevelFromString(tt.in); got != tt.want {
			t.Fatalf("LevelFromString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ropen.log")

	for _, msg := range []string{"first", "second"} {
		logger, closer, err := NewFileLogger(path, slog.LevelInfo)
		if err != nil {
			t.Fatalf("NewFileLogger returned error: %v", err)
		}
		logger.Info(msg)
		logger.Debug("hidden")
		if err := closer.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "msg=first") || !strings.Contains(text, "msg=second") {
		t.Fatalf("expected both runs in log:\n%s", text)
	}
	if strings.Contains(text, "hidden") {
		t.Fatalf("debug line written at info level:\n%s", text)
	}
}

func TestDiscardIsDisabled(t *testing.T) {
	if Discard().Enabled(t.Context(), slog.LevelError) {
		t.Fatalf("discard logger should not be enabled")
	}
}
