// Command paywalld serves the paywall engine over HTTP.
//
// The record backend is selected with PAYWALL_BACKEND (memory, redis,
// postgres, mongo, s3 or none) and the billing provider with PAYWALL_BILLING
// (simulated or paddle). Each backend reads its own connection settings from
// the environment. Set TRUST_PROXY_HEADERS only when a reverse proxy
// overwrites X-Forwarded-For.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"

	paywallmod "github.com/dmitrymomot/creatorkit/modules/paywall"
	"github.com/dmitrymomot/creatorkit/pkg/config"
	"github.com/dmitrymomot/creatorkit/pkg/httpserver"
	"github.com/dmitrymomot/creatorkit/pkg/logger"
	"github.com/dmitrymomot/creatorkit/pkg/paywall"
	"github.com/dmitrymomot/creatorkit/pkg/ratelimiter"
	"github.com/dmitrymomot/creatorkit/pkg/requestid"
)

var (
	errUnknownBackend  = errors.New("unknown PAYWALL_BACKEND")
	errUnknownBilling  = errors.New("unknown PAYWALL_BILLING")
	errInvalidLanguage = errors.New("invalid APP_LANG")
)

type appConfig struct {
	Env        string `env:"APP_ENV" envDefault:"development"`
	Name       string `env:"APP_NAME" envDefault:"paywalld"`
	Lang       string `env:"APP_LANG" envDefault:"en"` // price display fallback
	LogLevel   string `env:"LOG_LEVEL"`
	Backend    string `env:"PAYWALL_BACKEND" envDefault:"memory"`
	Billing    string `env:"PAYWALL_BILLING" envDefault:"simulated"`
	TrustProxy bool   `env:"TRUST_PROXY_HEADERS"` // set only behind a proxy that overwrites X-Forwarded-For
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("paywalld stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	var pwCfg paywall.Config
	if err := config.Load(&pwCfg); err != nil {
		return err
	}
	var srvCfg httpserver.Config
	if err := config.Load(&srvCfg); err != nil {
		return err
	}
	var limitCfg ratelimiter.Config
	if err := config.Load(&limitCfg); err != nil {
		return err
	}
	limits := ratelimiter.NewMemoryStore()
	defer limits.Close()
	charges, err := ratelimiter.NewBucket(limits, limitCfg)
	if err != nil {
		return err
	}

	catalog, err := pwCfg.Catalog()
	if err != nil {
		return err
	}
	provider, err := newProvider(cfg.Billing, pwCfg, catalog)
	if err != nil {
		return err
	}
	lang, err := language.Parse(cfg.Lang)
	if err != nil {
		return errors.Join(errInvalidLanguage, err)
	}

	be, err := openBackend(ctx, cfg.Backend, log)
	if err != nil {
		return err
	}

	store := paywall.NewStore(be.kv, pwCfg.StoreOptions(log)...)
	svc := paywall.NewService(store, provider, pwCfg.Options(log, catalog)...)

	r := chi.NewRouter()
	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Get("/readyz", httpserver.HealthCheckHandler(log, paywall.Probe(be.kv, pwCfg.StoreKey)))
	r.Mount("/paywall", paywallmod.New(svc,
		paywallmod.WithLogger(log),
		paywallmod.WithChargeLimiter(charges),
		paywallmod.WithLanguage(lang),
		paywallmod.WithTrustedProxy(cfg.TrustProxy),
	).Handle())

	srv := httpserver.NewFromConfig(srvCfg,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(func(*slog.Logger) { be.close(context.Background()) }),
	)
	log.InfoContext(ctx, "paywall ready",
		logger.Backend(cfg.Backend), slog.String("billing", cfg.Billing))
	return srv.Run(ctx, r)
}
