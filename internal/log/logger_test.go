package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		out = append(out, rec)
	}
	return out
}

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Format: "json", Output: &buf, Component: ComponentAPI})

	logger.Info("hello", FieldOperation, OpRefetch)
	logger.WithComponent(ComponentResource).Debug("state changed")

	recs := decodeLines(t, &buf)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0][FieldComponent] != ComponentAPI || recs[0][FieldOperation] != OpRefetch {
		t.Fatalf("unexpected first record: %v", recs[0])
	}
	if recs[1][FieldComponent] != ComponentResource {
		t.Fatalf("unexpected second record: %v", recs[1])
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Format: "json", Output: &buf})
	logger.Info("dropped")
	logger.Warn("kept")
	recs := decodeLines(t, &buf)
	if len(recs) != 1 || recs[0]["msg"] != "kept" {
		t.Fatalf("unexpected records: %v", recs)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestContextRoundTrip(t *testing.T) {
	logger := Discard().WithComponent(ComponentTUI)
	ctx := WithContext(context.Background(), logger)
	if got := FromContext(ctx); got != logger {
		t.Fatalf("expected logger from context")
	}
	if got := FromContext(context.Background()); got.Component() != "unknown" {
		t.Fatalf("expected fallback logger, got component %q", got.Component())
	}
}

func TestLogFields(t *testing.T) {
	f := NewFields().
		WithOperation(OpDelete).
		WithResource("").
		WithError(errors.New("boom")).
		WithErrorType("").
		WithHTTPRequest("GET", "/expenses", "")
	if _, ok := f[FieldResourceID]; ok {
		t.Fatalf("empty resource id should be omitted")
	}
	if _, ok := f[FieldQuery]; ok {
		t.Fatalf("empty query should be omitted")
	}
	if f[FieldError] != "boom" || f[FieldOperation] != OpDelete {
		t.Fatalf("unexpected fields: %v", f)
	}
	if _, ok := f[FieldErrorType]; ok {
		t.Fatalf("empty error type should be omitted")
	}
	if f.WithErrorType(ErrorTypeNotFound)[FieldErrorType] != ErrorTypeNotFound {
		t.Fatalf("error type not set: %v", f)
	}
	if len(f.ToSlice()) != 2*len(f) {
		t.Fatalf("ToSlice length mismatch")
	}
}
