package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/creatorkit/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

type ctxKey struct{}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json at info by default", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))
		log.Debug("hidden")
		log.Info("upgraded", logger.Tier("pro"))

		entry := decode(t, &buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "upgraded", entry["msg"])
		assert.Equal(t, "pro", entry["tier"])
	})

	t.Run("last formatter wins", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger.New(logger.WithOutput(&buf), logger.WithJSONFormatter(), logger.WithTextFormatter()).Info("hello")
		assert.Contains(t, buf.String(), "level=INFO msg=hello")
	})

	t.Run("static and context attributes", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("svc", "paywalld")),
			logger.WithContextValue("viewer", ctxKey{}),
			logger.WithContextValue("", ctxKey{}),
			logger.WithContextExtractors(nil),
		)

		log.InfoContext(context.WithValue(context.Background(), ctxKey{}, "v42"), "read")
		entry := decode(t, &buf)
		assert.Equal(t, "paywalld", entry["svc"])
		assert.Equal(t, "v42", entry["viewer"])

		buf.Reset()
		log.With(logger.Component("store")).InfoContext(context.Background(), "read")
		entry = decode(t, &buf)
		assert.NotContains(t, entry, "viewer")
		assert.Equal(t, "store", entry["component"])
	})

	t.Run("extractors survive groups", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithContextValue("viewer", ctxKey{}))
		log.WithGroup("paywall").InfoContext(context.WithValue(context.Background(), ctxKey{}, "v1"), "gate")
		group, ok := decode(t, &buf)["paywall"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "v1", group["viewer"])
	})

	t.Run("level by name", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevelName("warn"), logger.WithLevelName(""))
		log.Info("hidden")
		assert.Zero(t, buf.Len())
		log.Warn("shown")
		assert.Equal(t, "WARN", decode(t, &buf)["level"])
	})
}

func TestNew_Panics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	assert.Panics(t, func() { logger.New(logger.WithLevelName("loud")) })
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"production": logger.EnvProduction,
		"prod":       logger.EnvProduction,
		" Staging ":  logger.EnvStaging,
		"stage":      logger.EnvStaging,
		"dev":        logger.EnvDevelopment,
		"anything":   logger.EnvDevelopment,
	}
	for env, want := range tests {
		t.Run(env, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logger.New(
				logger.WithEnvironment(env, "paywalld"),
				logger.WithOutput(&buf),
				logger.WithJSONFormatter(),
			).Info("msg")
			entry := decode(t, &buf)
			assert.Equal(t, want, entry["env"])
			assert.Equal(t, "paywalld", entry["service"])
		})
	}

	t.Run("development logs debug as text", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger.New(logger.WithDevelopment("svc"), logger.WithOutput(&buf)).Debug("msg")
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "service=svc")
	})

	t.Run("empty service is ignored", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger.New(logger.WithProduction(""), logger.WithOutput(&buf)).Info("msg")
		assert.NotContains(t, decode(t, &buf), "service")
	})
}

func TestSetAsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger.SetAsDefault(logger.New(logger.WithOutput(&buf)))
	slog.Info("default")
	assert.Equal(t, "default", decode(t, &buf)["msg"])
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	log := logger.Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
	log.Error("dropped")
}
