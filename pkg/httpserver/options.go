package httpserver

import (
	"log/slog"
	"time"
)

// Option configures the HTTP server.
type Option func(*config)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: empty listen address")
	}
	return func(c *config) { c.Addr = addr }
}

func positive(name string, d time.Duration, set func(*Config)) Option {
	if d <= 0 {
		panic("httpserver: " + name + " must be positive")
	}
	return func(c *config) { set(&c.Config) }
}

func WithReadTimeout(d time.Duration) Option {
	return positive("read timeout", d, func(c *Config) { c.ReadTimeout = d })
}

func WithWriteTimeout(d time.Duration) Option {
	return positive("write timeout", d, func(c *Config) { c.WriteTimeout = d })
}

func WithIdleTimeout(d time.Duration) Option {
	return positive("idle timeout", d, func(c *Config) { c.IdleTimeout = d })
}

// WithShutdownTimeout bounds how long in-flight requests may drain.
func WithShutdownTimeout(d time.Duration) Option {
	return positive("shutdown timeout", d, func(c *Config) { c.ShutdownTimeout = d })
}

// WithLogger sets the server logger. Nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStartHook runs h once the listener is bound.
func WithStartHook(h func(*slog.Logger)) Option {
	if h == nil {
		panic("httpserver: nil start hook")
	}
	return func(c *config) { c.startHooks = append(c.startHooks, h) }
}

// WithStopHook runs h after shutdown completes; backends close here.
func WithStopHook(h func(*slog.Logger)) Option {
	if h == nil {
		panic("httpserver: nil stop hook")
	}
	return func(c *config) { c.stopHooks = append(c.stopHooks, h) }
}
