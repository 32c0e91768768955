package paywall_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/creatorkit/pkg/config"
	"github.com/dmitrymomot/creatorkit/pkg/logger"
	"github.com/dmitrymomot/creatorkit/pkg/paywall"
)

func TestConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)

		var cfg paywall.Config
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, paywall.DefaultStoreKey, cfg.StoreKey)
		assert.Equal(t, time.Second, cfg.UpgradeLatency)
		assert.Equal(t, 500*time.Millisecond, cfg.CancelLatency)
		assert.Equal(t, uint64(3), cfg.MaxWriteRetries)
		assert.Equal(t, 1024, cfg.EventCacheSize)

		catalog, err := cfg.Catalog()
		require.NoError(t, err)
		p, _ := catalog.Price(paywall.TierPremium)
		assert.Equal(t, int64(999), p.Amount)
	})

	t.Run("from environment", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)

		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0o600))
		t.Setenv("PAYWALL_STORE_KEY", "viewer:7")
		t.Setenv("PAYWALL_CATALOG_PATH", path)
		t.Setenv("PAYWALL_UPGRADE_LATENCY", "0s")
		t.Setenv("PAYWALL_FAILURE_RATE", "1")

		var cfg paywall.Config
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "viewer:7", cfg.StoreKey)

		catalog, err := cfg.Catalog()
		require.NoError(t, err)
		p, _ := catalog.Price(paywall.TierPro)
		assert.Equal(t, "pri_pro", p.PriceID)

		assert.Len(t, cfg.StoreOptions(logger.Discard()), 2)
		assert.NotEmpty(t, cfg.Options(logger.Discard(), catalog))
		assert.NotNil(t, cfg.SimulatedProvider())
	})
}
