package paywall

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/creatorkit/pkg/logger"
)

const (
	defaultMaxWriteRetries = 3
	defaultCancelDelay     = 500 * time.Millisecond
	defaultEventCacheSize  = 1024
)

// Option configures engine components (Evaluator, Entitlements, Manager, Service).
type Option func(*options)

type options struct {
	clock          Clock
	log            *slog.Logger
	catalog        *Catalog
	maxRetries     uint64
	cancelDelay    time.Duration
	eventCacheSize int
}

func newOptions(opts ...Option) *options {
	o := &options{
		clock:          systemClock,
		log:            logger.Discard(),
		catalog:        DefaultCatalog(),
		maxRetries:     defaultMaxWriteRetries,
		cancelDelay:    defaultCancelDelay,
		eventCacheSize: defaultEventCacheSize,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithClock overrides the time source. Nil clocks are ignored.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithCatalog sets the pricing catalog used for charges and webhook price mapping.
func WithCatalog(c *Catalog) Option {
	return func(o *options) {
		if c != nil {
			o.catalog = c
		}
	}
}

// WithMaxWriteRetries bounds how many times a transition retries after a version conflict.
func WithMaxWriteRetries(n uint64) Option {
	return func(o *options) { o.maxRetries = n }
}

// WithCancelDelay sets the simulated latency of Cancel. Zero disables it.
func WithCancelDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.cancelDelay = d
		}
	}
}

// WithEventCacheSize sets how many webhook event IDs are remembered for de-duplication.
func WithEventCacheSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.eventCacheSize = n
		}
	}
}
