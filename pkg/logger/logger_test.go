package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(buf *bytes.Buffer) Logger {
	return NewWithConfig(Config{
		Name:   "test",
		Format: FormatJSON,
		Level:  slog.LevelDebug,
		Writer: buf,
	})
}

func TestErrReturnsOriginalError(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf)

	original := errors.New("boom")
	returned := log.Err("operation failed", original)

	assert.Equal(t, original, returned)
	assert.Contains(t, buf.String(), "operation failed")
	assert.Contains(t, buf.String(), "boom")
}

func TestErrorWithTypeWrapsSentinel(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf)

	sentinel := errors.New("validation error")
	err := log.ErrorWithType(sentinel, "bad input", "field", "email")

	assert.True(t, errors.Is(err, sentinel))
	assert.Contains(t, err.Error(), "bad input")
}

func TestWithAddsStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf).Function("TestFn").With("key", "value")

	log.Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "TestFn", entry["function"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "test", entry["package"])
}

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := ContextWithTraceID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", TraceIDFromContext(ctx))

	var buf bytes.Buffer
	log := newBufferLogger(&buf).TraceFromContext(ctx)
	log.Info("traced")

	assert.Contains(t, buf.String(), "abc-123")
}

func TestTraceFromContextWithoutTraceID(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf).TraceFromContext(context.Background())
	log.Info("untraced")

	assert.NotContains(t, buf.String(), "traceID")
}
