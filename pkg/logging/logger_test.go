package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	if logger == nil || logger.Logger == nil {
		t.Fatal("NewLogger() returned an unusable logger")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected slog.Level
	}{
		{"debug level", "DEBUG", slog.LevelDebug},
		{"info level", "INFO", slog.LevelInfo},
		{"warn level", "WARN", slog.LevelWarn},
		{"warning level", "WARNING", slog.LevelWarn},
		{"error level", "ERROR", slog.LevelError},
		{"lowercase debug", "debug", slog.LevelDebug},
		{"padded", " warn ", slog.LevelWarn},
		{"invalid level", "INVALID", slog.LevelInfo},
		{"empty value", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if level := ParseLevel(tt.value); level != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.value, level, tt.expected)
			}
		})
	}
}

func TestRunID(t *testing.T) {
	t.Run("generate", func(t *testing.T) {
		id1, id2 := GenerateRunID(), GenerateRunID()
		if len(id1) != 16 {
			t.Errorf("expected 16 hex characters, got %q", id1)
		}
		if id1 == id2 {
			t.Error("generated run IDs should differ")
		}
	})

	t.Run("explicit", func(t *testing.T) {
		ctx := WithRunID(context.Background(), "attempt-7")
		if got := GetRunID(ctx); got != "attempt-7" {
			t.Errorf("GetRunID() = %q, want attempt-7", got)
		}
	})

	t.Run("generated_when_empty", func(t *testing.T) {
		ctx := WithRunID(context.Background(), "")
		if GetRunID(ctx) == "" {
			t.Error("expected a generated run ID")
		}
	})

	t.Run("missing", func(t *testing.T) {
		if got := GetRunID(context.Background()); got != "" {
			t.Errorf("GetRunID() = %q, want empty", got)
		}
	})
}

func TestRoundFloats(t *testing.T) {
	tests := []struct {
		name     string
		attr     slog.Attr
		expected string
	}{
		{"rounded", slog.Float64("x", 12.3456789), "12.346"},
		{"integral", slog.Float64("dt", 2), "2"},
		{"nan", slog.Float64("bad", math.NaN()), "NaN"},
		{"string untouched", slog.String("level_id", "tutorial"), "tutorial"},
		{"int untouched", slog.Int("touches", 3), "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := roundFloats(nil, tt.attr)
			if result.Key != tt.attr.Key {
				t.Errorf("key changed to %q", result.Key)
			}
			if result.Value.String() != tt.expected {
				t.Errorf("roundFloats() = %q, want %q", result.Value.String(), tt.expected)
			}
		})
	}
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse log JSON: %v", err)
	}
	return entry
}

func TestLoggerMethods(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, slog.LevelDebug)
	ctx := WithRunID(context.Background(), "run-123")

	t.Run("info logging", func(t *testing.T) {
		buf.Reset()
		logger.Info(ctx, "run started", "level_id", "tutorial", "tail_x", 1.23456)

		entry := decodeEntry(t, &buf)
		if entry["msg"] != "run started" || entry["level"] != "INFO" {
			t.Errorf("unexpected entry: %v", entry)
		}
		if entry["run_id"] != "run-123" {
			t.Errorf("Expected run_id 'run-123', got %v", entry["run_id"])
		}
		if entry["tail_x"] != 1.235 {
			t.Errorf("Expected tail_x rounded to 1.235, got %v", entry["tail_x"])
		}
	})

	t.Run("error logging", func(t *testing.T) {
		buf.Reset()
		logger.Error(ctx, "level load failed", errors.New("boom"), "path", "levels.json")

		entry := decodeEntry(t, &buf)
		if entry["level"] != "ERROR" || entry["error"] != "boom" {
			t.Errorf("unexpected entry: %v", entry)
		}
	})

	t.Run("debug and warn logging", func(t *testing.T) {
		buf.Reset()
		logger.Debug(ctx, "phase change")
		if decodeEntry(t, &buf)["level"] != "DEBUG" {
			t.Error("expected DEBUG entry")
		}

		buf.Reset()
		logger.Warn(ctx, "delta time clamped")
		if decodeEntry(t, &buf)["level"] != "WARN" {
			t.Error("expected WARN entry")
		}
	})
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, slog.LevelWarn)

	logger.Info(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at WARN, got %q", buf.String())
	}

	logger.Warn(context.Background(), "shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("warn should be written at WARN")
	}
}

func TestLogWithoutRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, slog.LevelInfo)

	logger.Info(context.Background(), "test message")

	if strings.Contains(buf.String(), "run_id") {
		t.Error("Log should not contain run_id when none is set in context")
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}

	original := errors.New("original error")
	wrapped := WrapError(original, "loading level %q", "fifth")

	if wrapped.Error() != `loading level "fifth": original error` {
		t.Errorf("WrapError() = %q", wrapped.Error())
	}
	if !errors.Is(wrapped, original) {
		t.Error("WrapError() should preserve original error")
	}
}
