package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: " WARN ", expected: slog.LevelWarn},
		{input: "warning", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
		{input: "", expected: slog.LevelInfo},
		{input: "verbose", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestNewHandlerTagsService(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, "scoop", "info", "json"))
	logger.Info("hello")

	out := buf.String()
	if !strings.Contains(out, `"service":"scoop"`) {
		t.Fatalf("expected service attribute in output, got %s", out)
	}
}

func TestNewHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, "scoop", "warn", "text"))
	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info record to be filtered, got %q", buf.String())
	}
}

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()) != slog.Default() {
		t.Fatal("expected default logger for empty context")
	}

	logger := Discard()
	ctx := IntoContext(context.Background(), logger)
	if FromContext(ctx) != logger {
		t.Fatal("expected logger stored in context")
	}
}
