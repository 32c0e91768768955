package paywall

import (
	"log/slog"
	"time"
)

// Config holds the environment-driven engine settings.
type Config struct {
	StoreKey        string        `env:"PAYWALL_STORE_KEY" envDefault:"paywall:subscription"`
	CatalogPath     string        `env:"PAYWALL_CATALOG_PATH"`
	UpgradeLatency  time.Duration `env:"PAYWALL_UPGRADE_LATENCY" envDefault:"1s"`
	CancelLatency   time.Duration `env:"PAYWALL_CANCEL_LATENCY" envDefault:"500ms"`
	FailureRate     float64       `env:"PAYWALL_FAILURE_RATE" envDefault:"0"`
	MaxWriteRetries uint64        `env:"PAYWALL_MAX_WRITE_RETRIES" envDefault:"3"`
	EventCacheSize  int           `env:"PAYWALL_EVENT_CACHE_SIZE" envDefault:"1024"`
}

// Catalog loads the catalog file, or returns DefaultCatalog when no path is set.
func (c Config) Catalog() (*Catalog, error) {
	if c.CatalogPath == "" {
		return DefaultCatalog(), nil
	}
	return LoadCatalog(c.CatalogPath)
}

// StoreOptions returns the Store options described by c.
func (c Config) StoreOptions(log *slog.Logger) []StoreOption {
	return []StoreOption{WithStoreKey(c.StoreKey), WithStoreLogger(log)}
}

// Options returns the engine options described by c.
func (c Config) Options(log *slog.Logger, catalog *Catalog) []Option {
	return []Option{
		WithLogger(log),
		WithCatalog(catalog),
		WithMaxWriteRetries(c.MaxWriteRetries),
		WithCancelDelay(c.CancelLatency),
		WithEventCacheSize(c.EventCacheSize),
	}
}

// SimulatedProvider returns a SimulatedProvider using the configured latency and failure rate.
func (c Config) SimulatedProvider() *SimulatedProvider {
	return NewSimulatedProvider(WithLatency(c.UpgradeLatency), WithFailureRate(c.FailureRate))
}
