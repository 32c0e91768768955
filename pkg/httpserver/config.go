package httpserver

import "time"

// Config holds the environment-driven server settings.
type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"` // must exceed the billing round-trip
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// NewFromConfig creates a Server from cfg. Zero fields keep the defaults;
// opts are applied after cfg.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	fromEnv := func(c *config) {
		if cfg.Addr != "" {
			c.Addr = cfg.Addr
		}
		for _, d := range []struct {
			src time.Duration
			dst *time.Duration
		}{
			{cfg.ReadTimeout, &c.ReadTimeout},
			{cfg.WriteTimeout, &c.WriteTimeout},
			{cfg.IdleTimeout, &c.IdleTimeout},
			{cfg.ShutdownTimeout, &c.ShutdownTimeout},
		} {
			if d.src > 0 {
				*d.dst = d.src
			}
		}
	}
	return New(append([]Option{fromEnv}, opts...)...)
}
