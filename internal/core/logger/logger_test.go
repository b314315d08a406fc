package logger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

type recordingLogger struct {
	entries []LogEntry
}

func (r *recordingLogger) Log(_ context.Context, entry LogEntry) {
	r.entries = append(r.entries, entry)
}
func (r *recordingLogger) Shutdown(context.Context) error { return nil }

func TestFacade_RoutesToGlobalLogger(t *testing.T) {
	rec := &recordingLogger{}
	previous := SetLogger(rec)
	defer SetLogger(previous)

	ctx := context.Background()
	Info(ctx, "sweep: completed", map[string]any{"updated": 3})
	Error(ctx, "sweep: update failed", errors.New("boom"), nil)

	if len(rec.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(rec.entries))
	}
	if rec.entries[0].Level != LogLevelInfo || rec.entries[0].Attributes["updated"] != 3 {
		t.Fatalf("unexpected first entry %+v", rec.entries[0])
	}
	if rec.entries[1].Level != LogLevelError || rec.entries[1].Error == nil {
		t.Fatalf("unexpected second entry %+v", rec.entries[1])
	}
	if rec.entries[1].Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}
}

func TestConsoleLogger_WritesFieldsAndRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(&buf, "smartpantry", "info")

	l.Log(context.Background(), newLogEntry(LogLevelDebug, "hidden", nil, nil))
	l.Log(context.Background(), newLogEntry(LogLevelWarn, "category lookup failed", errors.New("redis down"), map[string]any{"category_id": "abc"}))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry should be filtered at info level: %q", out)
	}
	for _, want := range []string{"category lookup failed", "redis down", "category_id", "smartpantry"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestWithAttributes_MergesIntoEntries(t *testing.T) {
	rec := &recordingLogger{}
	previous := SetLogger(rec)
	defer SetLogger(previous)

	ctx := WithAttributes(context.Background(), map[string]any{"http.request_id": "req-1", "user.id": "anon"})
	ctx = WithAttributes(ctx, map[string]any{"user.id": "owner-1"})

	Info(ctx, "product: created", map[string]any{"product_id": "p1", "http.request_id": "explicit"})

	if len(rec.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(rec.entries))
	}
	attrs := rec.entries[0].Attributes
	if attrs["user.id"] != "owner-1" {
		t.Fatalf("expected inner context value to win, got %v", attrs["user.id"])
	}
	if attrs["http.request_id"] != "explicit" {
		t.Fatalf("expected explicit attribute to win, got %v", attrs["http.request_id"])
	}
	if attrs["product_id"] != "p1" {
		t.Fatalf("expected entry attribute to survive, got %v", attrs["product_id"])
	}
}

func TestLeveledLogger_DropsBelowMinimum(t *testing.T) {
	rec := &recordingLogger{}
	l := &leveledLogger{Logger: rec, min: ParseLevel("warn")}

	ctx := context.Background()
	l.Log(ctx, newLogEntry(LogLevelDebug, "noise", nil, nil))
	l.Log(ctx, newLogEntry(LogLevelInfo, "noise", nil, nil))
	l.Log(ctx, newLogEntry(LogLevelWarn, "kept", nil, nil))
	l.Log(ctx, newLogEntry(LogLevelError, "kept", nil, nil))

	if len(rec.entries) != 2 {
		t.Fatalf("expected 2 entries at warn and above, got %d", len(rec.entries))
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"info":    LogLevelInfo,
		" ERROR ": LogLevelError,
		"verbose": LogLevelDebug,
		"":        LogLevelDebug,
	}
	for input, want := range cases {
		if got := ParseLevel(input); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", input, got, want)
		}
	}
}
