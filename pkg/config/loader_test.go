package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/creatorkit/pkg/config"
)

type defaultsConfig struct {
	StoreKey string        `env:"CFG_TEST_STORE_KEY" envDefault:"paywall:subscription"`
	Latency  time.Duration `env:"CFG_TEST_LATENCY" envDefault:"1s"`
	Retries  uint64        `env:"CFG_TEST_RETRIES" envDefault:"3"`
}

type cachedConfig struct {
	Value string `env:"CFG_TEST_CACHED" envDefault:"default"`
}

type requiredConfig struct {
	Required string `env:"CFG_TEST_REQUIRED,required"`
}

type fileConfig struct {
	Backend string  `env:"CFG_TEST_BACKEND"`
	Rate    float64 `env:"CFG_TEST_RATE"`
	Only    string  `env:"CFG_TEST_ONLY_OVERRIDE"`
}

type otherConfigA struct {
	Value string `env:"CFG_TEST_A" envDefault:"a"`
}

type otherConfigB struct {
	Value string `env:"CFG_TEST_B" envDefault:"b"`
}

func writeEnv(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg defaultsConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "paywall:subscription", cfg.StoreKey)
		assert.Equal(t, time.Second, cfg.Latency)
		assert.Equal(t, uint64(3), cfg.Retries)
	})

	t.Run("cached per type", func(t *testing.T) {
		t.Setenv("CFG_TEST_CACHED", "first")
		var first cachedConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("CFG_TEST_CACHED", "second")
		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Value)

		var reloaded cachedConfig
		require.NoError(t, config.ForceReload(&reloaded))
		assert.Equal(t, "second", reloaded.Value)
	})

	t.Run("different types are independent", func(t *testing.T) {
		t.Setenv("CFG_TEST_A", "alpha")
		t.Setenv("CFG_TEST_B", "beta")
		var a otherConfigA
		var b otherConfigB
		require.NoError(t, config.Load(&a))
		require.NoError(t, config.Load(&b))
		assert.Equal(t, "alpha", a.Value)
		assert.Equal(t, "beta", b.Value)
	})

	t.Run("missing required", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)

		t.Setenv("CFG_TEST_REQUIRED", "set")
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "set", cfg.Required)
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *defaultsConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})

	t.Run("must load panics", func(t *testing.T) {
		os.Unsetenv("CFG_TEST_REQUIRED")
		config.ResetCache()
		assert.Panics(t, func() {
			var cfg requiredConfig
			config.MustLoad(&cfg)
		})
	})
}

func TestLoadEnv(t *testing.T) {
	base := writeEnv(t, ".env.base", "CFG_TEST_BACKEND=redis\nCFG_TEST_RATE=0.25\n")
	override := writeEnv(t, ".env.override", "CFG_TEST_BACKEND=postgres\nCFG_TEST_ONLY_OVERRIDE=\"quoted value\"\n")
	t.Cleanup(func() {
		os.Unsetenv("CFG_TEST_BACKEND")
		os.Unsetenv("CFG_TEST_RATE")
		os.Unsetenv("CFG_TEST_ONLY_OVERRIDE")
	})

	require.NoError(t, config.LoadEnv(base, override))

	var cfg fileConfig
	require.NoError(t, config.ForceReload(&cfg))
	assert.Equal(t, "postgres", cfg.Backend)
	assert.InDelta(t, 0.25, cfg.Rate, 1e-9)
	assert.Equal(t, "quoted value", cfg.Only)
}

func TestLoadEnv_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	err := config.LoadEnv(missing)
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	assert.Panics(t, func() { config.MustLoadEnv(missing) })
}
