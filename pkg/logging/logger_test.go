package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	if logger == nil || logger.Logger == nil {
		t.Fatal("NewLogger() returned an unusable logger")
	}
}

func TestLogLevelFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected slog.Level
	}{
		{"debug level", "DEBUG", slog.LevelDebug},
		{"info level", "INFO", slog.LevelInfo},
		{"warn level", "WARN", slog.LevelWarn},
		{"warning level", "WARNING", slog.LevelWarn},
		{"error level", "ERROR", slog.LevelError},
		{"lowercase debug", "debug", slog.LevelDebug},
		{"invalid level", "LOUD", slog.LevelInfo},
		{"empty value", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("FREECG_LOG_LEVEL", tt.envValue)
			if level := getLogLevelFromEnv(); level != tt.expected {
				t.Errorf("getLogLevelFromEnv() = %v, want %v", level, tt.expected)
			}
		})
	}
}

func TestRunID(t *testing.T) {
	t.Run("generate", func(t *testing.T) {
		id1 := GenerateRunID()
		id2 := GenerateRunID()
		if len(id1) != 16 {
			t.Errorf("Expected 16 hex characters, got %d", len(id1))
		}
		if id1 == id2 {
			t.Error("GenerateRunID() returned duplicate IDs")
		}
	})

	t.Run("explicit", func(t *testing.T) {
		ctx := WithRunID(context.Background(), "level-1")
		if got := GetRunID(ctx); got != "level-1" {
			t.Errorf("GetRunID() = %q, want %q", got, "level-1")
		}
	})

	t.Run("missing", func(t *testing.T) {
		if got := GetRunID(context.Background()); got != "" {
			t.Errorf("GetRunID() = %q, want empty string", got)
		}
	})

	t.Run("auto-generate", func(t *testing.T) {
		ctx := WithRunID(context.Background(), "")
		if got := GetRunID(ctx); len(got) != 16 {
			t.Errorf("Expected generated run ID, got %q", got)
		}
	})
}

func TestSanitizeAttributes(t *testing.T) {
	tests := []struct {
		name     string
		attr     slog.Attr
		expected string
	}{
		{"password field", slog.String("password", "hunter2"), "[REDACTED]"},
		{"token field", slog.String("auth_token", "abc"), "[REDACTED]"},
		{"case insensitive", slog.String("SECRET", "x"), "[REDACTED]"},
		{"gameplay key", slog.Int("key", 2), "2"},
		{"level path", slog.String("level", "demo.yaml"), "demo.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := sanitizeAttributes(nil, tt.attr)
			if result.Value.String() != tt.expected {
				t.Errorf("sanitizeAttributes() = %q, want %q", result.Value.String(), tt.expected)
			}
		})
	}
}

func TestLoggerMethods(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelDebug)
	ctx := WithRunID(context.Background(), "run-123")

	tests := []struct {
		name  string
		log   func()
		level string
	}{
		{"info", func() { logger.Info(ctx, "msg", "lives", 3) }, "INFO"},
		{"warn", func() { logger.Warn(ctx, "msg") }, "WARN"},
		{"debug", func() { logger.Debug(ctx, "msg") }, "DEBUG"},
		{"error", func() { logger.Error(ctx, "msg", errors.New("boom")) }, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log()

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("Failed to parse log JSON: %v", err)
			}
			if entry["level"] != tt.level {
				t.Errorf("Expected level %q, got %v", tt.level, entry["level"])
			}
			if entry["run_id"] != "run-123" {
				t.Errorf("Expected run_id 'run-123', got %v", entry["run_id"])
			}
			if tt.level == "ERROR" && entry["error"] != "boom" {
				t.Errorf("Expected error 'boom', got %v", entry["error"])
			}
		})
	}
}

func TestLogWithoutRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)
	logger.Info(context.Background(), "test message")

	if strings.Contains(buf.String(), "run_id") {
		t.Error("Log should not contain run_id when none is set in context")
	}
}

func TestNop(t *testing.T) {
	Nop().Error(context.Background(), "dropped", errors.New("x"))
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}

	originalErr := errors.New("original error")
	wrapped := WrapError(originalErr, "loading %s", "demo.yaml")
	if wrapped.Error() != "loading demo.yaml: original error" {
		t.Errorf("WrapError() = %q", wrapped.Error())
	}
	if !errors.Is(wrapped, originalErr) {
		t.Error("WrapError() should preserve original error")
	}
}
