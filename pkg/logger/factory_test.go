package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/dmitrymomot/sesskit/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

type ctxKey string

func TestNew(t *testing.T) {
	t.Run("json at info by default", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Debug("hidden")
		assert.Empty(t, buf.String())

		log.Info("hello")
		entry := decodeLine(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText))
		log.Info("hello")
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("unknown format keeps json", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat("xml"))
		log.Info("hello")
		assert.Equal(t, "hello", decodeLine(t, buf)["msg"])
	})

	t.Run("level var changes at runtime", func(t *testing.T) {
		buf := &bytes.Buffer{}
		lvl := &slog.LevelVar{}
		lvl.Set(slog.LevelWarn)
		log := logger.New(logger.WithOutput(buf), logger.WithLevel(lvl))
		log.Info("hidden")
		assert.Empty(t, buf.String())

		lvl.Set(slog.LevelDebug)
		log.Debug("shown")
		assert.Equal(t, "shown", decodeLine(t, buf)["msg"])
	})

	t.Run("static attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "test")))
		log.Info("msg")
		assert.Equal(t, "test", decodeLine(t, buf)["svc"])
	})
}

func TestContextExtractors(t *testing.T) {
	idKey := ctxKey("id")
	extractID := func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(idKey).(string); ok {
			return slog.String("id", v), true
		}
		return slog.Attr{}, false
	}
	ctx := context.WithValue(context.Background(), idKey, "42")

	t.Run("adds extracted attribute", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextExtractors(extractID))
		log.InfoContext(ctx, "msg")
		assert.Equal(t, "42", decodeLine(t, buf)["id"])
	})

	t.Run("missing value adds nothing", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextExtractors(extractID))
		log.InfoContext(context.Background(), "msg")
		assert.NotContains(t, decodeLine(t, buf), "id")
	})

	t.Run("nil extractors and empty keys are skipped", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextExtractors(nil, func(context.Context) (slog.Attr, bool) {
				return slog.String("", "anonymous"), true
			}),
		)
		log.InfoContext(ctx, "msg")
		entry := decodeLine(t, buf)
		assert.NotContains(t, entry, "")
		assert.Len(t, entry, 3) // time, level, msg
	})

	t.Run("survive With and WithGroup", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextExtractors(extractID)).
			With(slog.String("component", "csrf")).
			WithGroup("req")
		log.InfoContext(ctx, "msg")
		entry := decodeLine(t, buf)
		assert.Equal(t, "csrf", entry["component"])
		req, ok := entry["req"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "42", req["id"])
	})

	t.Run("context value", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextValue("request_id", idKey))
		log.InfoContext(ctx, "msg")
		assert.Equal(t, "42", decodeLine(t, buf)["request_id"])
	})

	t.Run("context value without key is ignored", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextValue("request_id", nil))
		log.InfoContext(ctx, "msg")
		assert.NotContains(t, decodeLine(t, buf), "request_id")
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Run("production defaults", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log, err := logger.NewFromConfig(
			logger.Config{Service: "svc", Env: "production"},
			logger.WithOutput(buf),
		)
		require.NoError(t, err)
		log.Debug("hidden")
		assert.Empty(t, buf.String())

		log.Info("msg")
		entry := decodeLine(t, buf)
		assert.Equal(t, "svc", entry["service"])
		assert.Equal(t, "production", entry["env"])
	})

	t.Run("development text output", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log, err := logger.NewFromConfig(
			logger.Config{Service: "svc", Env: "development"},
			logger.WithOutput(buf),
		)
		require.NoError(t, err)
		log.Debug("msg")
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "service=svc")
	})

	t.Run("explicit level and format win", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log, err := logger.NewFromConfig(
			logger.Config{Service: "svc", Env: "development", Level: "warn", Format: logger.FormatJSON},
			logger.WithOutput(buf),
		)
		require.NoError(t, err)
		log.Info("hidden")
		assert.Empty(t, buf.String())

		log.Warn("shown")
		assert.Equal(t, "shown", decodeLine(t, buf)["msg"])
	})

	t.Run("source location", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log, err := logger.NewFromConfig(
			logger.Config{Env: "production", AddSource: true},
			logger.WithOutput(buf),
		)
		require.NoError(t, err)
		log.Info("msg")
		assert.Contains(t, decodeLine(t, buf), slog.SourceKey)
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := logger.NewFromConfig(logger.Config{Level: "loud"})
		assert.ErrorIs(t, err, logger.ErrInvalidLevel)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := logger.NewFromConfig(logger.Config{Format: "xml"})
		assert.ErrorIs(t, err, logger.ErrInvalidFormat)
	})
}

func TestFormat_UnmarshalText(t *testing.T) {
	var f logger.Format
	require.NoError(t, f.UnmarshalText([]byte(" TEXT ")))
	assert.Equal(t, logger.FormatText, f)

	err := f.UnmarshalText([]byte("yaml"))
	assert.ErrorIs(t, err, logger.ErrInvalidFormat)
	assert.Equal(t, logger.FormatText, f)
}

func TestConfig_IsProduction(t *testing.T) {
	assert.True(t, logger.Config{Env: "Production"}.IsProduction())
	assert.True(t, logger.Config{Env: "prod"}.IsProduction())
	assert.False(t, logger.Config{Env: "staging"}.IsProduction())
	assert.False(t, logger.Config{}.IsProduction())
}
