package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reymi-tech/multitenant/pkg/logger"
)

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json format by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))
		log.Info("hello", slog.String("k", "v"))

		rec := decodeRecord(t, &buf)
		assert.Equal(t, "hello", rec["msg"])
		assert.Equal(t, "v", rec["k"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatText))
		log.Info("hello")

		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			logger.New(logger.WithFormat("xml"))
		})
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))
		log.Info("dropped")
		assert.Empty(t, buf.String())

		log.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("static attrs on every record", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithAttr(slog.String("service", "registry")))
		log.Info("hello")

		rec := decodeRecord(t, &buf)
		assert.Equal(t, "registry", rec["service"])
	})

	t.Run("development preset", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithDevelopment("registry"), logger.WithOutput(&buf))
		log.Debug("verbose")

		assert.Contains(t, buf.String(), "env=development")
		assert.Contains(t, buf.String(), "verbose")
	})

	t.Run("production preset", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithProduction("registry"), logger.WithOutput(&buf))
		log.Debug("dropped")
		assert.Empty(t, buf.String())

		log.Info("kept")
		rec := decodeRecord(t, &buf)
		assert.Equal(t, "production", rec["env"])
	})
}

func TestContextExtractors(t *testing.T) {
	t.Parallel()

	type ctxKey struct{}

	extractor := func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(ctxKey{}).(string); ok {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}

	t.Run("injects when present", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithContextExtractors(extractor))

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
		log.InfoContext(ctx, "hello")

		rec := decodeRecord(t, &buf)
		assert.Equal(t, "req-1", rec["request_id"])
	})

	t.Run("silent when absent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithContextExtractors(extractor))
		log.InfoContext(context.Background(), "hello")

		rec := decodeRecord(t, &buf)
		assert.NotContains(t, rec, "request_id")
	})

	t.Run("extractors survive With", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithContextExtractors(extractor))
		derived := log.With(slog.String("component", "worker"))

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-2")
		derived.InfoContext(ctx, "hello")

		rec := decodeRecord(t, &buf)
		assert.Equal(t, "req-2", rec["request_id"])
		assert.Equal(t, "worker", rec["component"])
	})

	t.Run("nil extractors are ignored", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithContextExtractors(nil, extractor))
		log.InfoContext(context.Background(), "hello")
		assert.Contains(t, buf.String(), "hello")
	})
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "error", logger.Error(errors.New("x")).Key)
	assert.Equal(t, slog.Attr{}, logger.TenantCode(""))
	assert.Equal(t, "tenant_code", logger.TenantCode("acme").Key)
	assert.Equal(t, slog.Attr{}, logger.UserID(""))
	assert.Equal(t, "trace_id", logger.TraceID("t").Key)
	assert.Equal(t, "error_code", logger.ErrorCode("X").Key)
	assert.Equal(t, "category", logger.Category("SYSTEM").Key)
	assert.Equal(t, "status_code", logger.StatusCode(500).Key)
	assert.Equal(t, "component", logger.Component("c").Key)
	assert.Equal(t, "strategy", logger.Strategy("header").Key)
}
