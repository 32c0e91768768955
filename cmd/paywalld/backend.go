package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/creatorkit/pkg/config"
	"github.com/dmitrymomot/creatorkit/pkg/logger"
	"github.com/dmitrymomot/creatorkit/pkg/mongo"
	"github.com/dmitrymomot/creatorkit/pkg/paywall"
	"github.com/dmitrymomot/creatorkit/pkg/pg"
	"github.com/dmitrymomot/creatorkit/pkg/redis"
	"github.com/dmitrymomot/creatorkit/pkg/s3kv"
)

// backend is the selected record storage and its cleanup.
type backend struct {
	kv    paywall.Backend // nil for the ephemeral store
	close func(context.Context)
}

func noClose(context.Context) {}

func openBackend(ctx context.Context, name string, log *slog.Logger) (backend, error) {
	log = log.With(logger.Backend(name))

	switch name {
	case "memory":
		return backend{kv: paywall.NewMemoryBackend(), close: noClose}, nil

	case "none":
		return backend{close: noClose}, nil

	case "redis":
		var cfg redis.Config
		if err := config.Load(&cfg); err != nil {
			return backend{}, err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return backend{}, err
		}
		log.InfoContext(ctx, "record backend connected")
		return backend{
			kv:    redis.NewKV(client),
			close: func(context.Context) { _ = client.Close() },
		}, nil

	case "postgres":
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return backend{}, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return backend{}, err
		}
		if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
			pool.Close()
			return backend{}, err
		}
		log.InfoContext(ctx, "record backend connected")
		return backend{
			kv:    pg.NewKV(pool),
			close: func(context.Context) { pool.Close() },
		}, nil

	case "mongo":
		var cfg mongo.Config
		if err := config.Load(&cfg); err != nil {
			return backend{}, err
		}
		client, err := mongo.New(ctx, cfg)
		if err != nil {
			return backend{}, err
		}
		log.InfoContext(ctx, "record backend connected")
		return backend{
			kv:    mongo.NewKV(client, cfg),
			close: func(ctx context.Context) { _ = client.Disconnect(ctx) },
		}, nil

	case "s3":
		var cfg s3kv.Config
		if err := config.Load(&cfg); err != nil {
			return backend{}, err
		}
		kv, err := s3kv.New(ctx, cfg)
		if err != nil {
			return backend{}, err
		}
		return backend{kv: kv, close: noClose}, nil

	default:
		return backend{}, fmt.Errorf("%w: %q", errUnknownBackend, name)
	}
}

func newProvider(name string, cfg paywall.Config, catalog *paywall.Catalog) (paywall.BillingProvider, error) {
	switch name {
	case "simulated":
		return cfg.SimulatedProvider(), nil
	case "paddle":
		// Paddle charges by price ID, so every paid tier needs one
		if err := catalog.RequirePriceIDs(); err != nil {
			return nil, err
		}
		var pc paywall.PaddleConfig
		if err := config.Load(&pc); err != nil {
			return nil, err
		}
		return paywall.NewPaddleProvider(pc)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownBilling, name)
	}
}
