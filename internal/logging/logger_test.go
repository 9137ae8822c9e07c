package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
		" DEBUG ": slog.LevelDebug,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNewLoggerNotNil(t *testing.T) {
	if NewLogger(Config{Level: "debug", Format: "json", Service: "svc", Version: "dev"}) == nil {
		t.Fatalf("expected a logger")
	}
	if NewLogger(Config{}) == nil {
		t.Fatalf("expected a logger with empty config")
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	logger := NewLogger(Config{})
	ctx := WithLogger(context.Background(), logger)

	if got := FromContext(ctx); got != logger {
		t.Fatalf("expected context logger to round-trip")
	}
	if FromContext(context.Background()) == nil {
		t.Fatalf("expected default logger for bare context")
	}
}

func TestNilSafeHelpers(t *testing.T) {
	// Must not panic with a nil logger.
	Info(nil, "msg")
	Warn(nil, "msg")
	Error(nil, "msg", nil)
}

func TestWithCommon(t *testing.T) {
	attrs := WithCommon(nil, "svc", "v1")
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %d", len(attrs))
	}
	if attrs := WithCommon(nil, "", ""); len(attrs) != 0 {
		t.Fatalf("expected no attrs for empty values, got %d", len(attrs))
	}
}
