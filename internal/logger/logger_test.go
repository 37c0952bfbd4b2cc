package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	log := New("debug")
	if log.GetLevel() != zerolog.DebugLevel {
		t.Errorf("expected debug level, got %v", log.GetLevel())
	}
	log.Info().Msg("test message")
}

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.Info().Str("key", "value").Msg("test message")

	output := buf.String()
	if output == "" {
		t.Error("expected log output, got empty string")
	}

	if !containsString(output, "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", output)
	}

	if !containsString(output, "key") {
		t.Errorf("expected output to contain 'key', got: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  zerolog.Level
	}{
		{"debug", "debug", zerolog.DebugLevel},
		{"warn", "warn", zerolog.WarnLevel},
		{"warning alias", "warning", zerolog.WarnLevel},
		{"error", "error", zerolog.ErrorLevel},
		{"mixed case", "DeBuG", zerolog.DebugLevel},
		{"padded", "  info  ", zerolog.InfoLevel},
		{"empty falls back to info", "", zerolog.InfoLevel},
		{"unknown falls back to info", "verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWithContext(t *testing.T) {
	log := New("")
	ctx := context.Background()

	ctxWithLogger := WithContext(ctx, log)

	if ctxWithLogger.Value(LoggerKey) == nil {
		t.Error("expected logger in context, got nil")
	}
}

func TestFromContext(t *testing.T) {
	log := New("")
	ctx := WithContext(context.Background(), log)

	retrievedLogger := FromContext(ctx)
	retrievedLogger.Info().Msg("test from context")
}

func TestFromContext_DefaultLogger(t *testing.T) {
	ctx := context.Background()

	log := FromContext(ctx)
	log.Info().Msg("default logger test")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	logWithFields := WithFields(log, map[string]interface{}{
		"user_id": 820540201,
		"chat_id": 820540201,
	})

	logWithFields.Info().Msg("with fields test")

	output := buf.String()
	if !containsString(output, "user_id") {
		t.Errorf("expected output to contain 'user_id', got: %s", output)
	}
}

// containsString checks if a string contains a substring
func containsString(s, substr string) bool {
	if len(substr) == 0 {
		return true
	}
	if len(s) < len(substr) {
		return false
	}
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
