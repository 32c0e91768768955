// Package logger builds *slog.Logger values from functional options and
// provides attribute helpers so every package logs with the same keys.
//
// New starts from JSON at info level on stdout. Environment profiles
// (WithDevelopment, WithStaging, WithProduction, or WithEnvironment to pick
// one by name) set level, format and the service/env attributes. Options
// apply in order, so WithLevelName placed after a profile overrides it.
//
// Context extractors add request-scoped attributes at Handle time:
//
//	log := logger.New(
//		logger.WithEnvironment(os.Getenv("APP_ENV"), "paywalld"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "subscription upgraded", logger.Tier("premium"), logger.Version(v))
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
