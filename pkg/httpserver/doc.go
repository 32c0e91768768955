// Package httpserver runs an HTTP handler with graceful shutdown and
// health-check endpoints.
//
// Run blocks until its context is cancelled or SIGINT/SIGTERM arrives, then
// calls http.Server.Shutdown with the configured deadline and runs the stop
// hooks. Listen failures are wrapped with ErrStart and shutdown failures with
// ErrShutdown.
//
//	r := chi.NewRouter()
//	r.Get("/healthz", httpserver.HealthCheckHandler(log))
//	r.Get("/readyz", httpserver.HealthCheckHandler(log, paywall.Probe(backend, key)))
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(func(*slog.Logger) { _ = client.Close() }),
//	)
//	if err := srv.Run(ctx, r); err != nil {
//		return err
//	}
package httpserver
