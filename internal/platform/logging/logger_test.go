package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	sonic "github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	if err := sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &out); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	return out
}

func TestLogger_KeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(LevelInfo, &buf).With("scope", "ELC:2025")

	logger.Warn("recompute skipped match", "match_id", 1003, "error", errors.New("same team"), zap.Int("round", 2), "dangling")

	line := decodeLine(t, &buf)
	if line["msg"] != "recompute skipped match" || line["level"] != "WARN" {
		t.Fatalf("unexpected envelope: %v", line)
	}
	if line["scope"] != "ELC:2025" || line["error"] != "same team" {
		t.Fatalf("unexpected fields: %v", line)
	}
	if line["match_id"] != float64(1003) || line["round"] != float64(2) {
		t.Fatalf("unexpected numeric fields: %v", line)
	}
	if v, ok := line["dangling"]; !ok || v != nil {
		t.Fatalf("expected dangling key with nil value, got %v", line)
	}
}

func TestLogger_ContextAddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(LevelDebug, &buf)

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1, 2, 3},
		SpanID:     trace.SpanID{4, 5, 6},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	logger.InfoContext(ctx, "http request")

	line := decodeLine(t, &buf)
	if line["trace_id"] != spanCtx.TraceID().String() || line["span_id"] != spanCtx.SpanID().String() {
		t.Fatalf("missing trace ids: %v", line)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(LevelWarn, &buf)

	logger.InfoContext(context.Background(), "ignored")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
}

func TestLogger_NilSafe(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if err := logger.Sync(); err != nil {
		t.Fatalf("sync nil logger: %v", err)
	}
	if logger.With("k", "v") == nil || logger.Named("x") == nil {
		t.Fatalf("expected nop loggers from nil receiver")
	}
}
