// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for parsing tagged structs:
//
//   - Load parses a struct once per type and caches the result.
//   - LoadEnv reads one or more .env files, later files winning.
//   - MustLoad and MustLoadEnv panic instead of returning errors, for startup code.
//   - ForceReload and ResetCache drop cached values, mostly for tests.
//
// # Usage
//
//	var cfg paywall.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatalf("config: %v", err)
//	}
//
// Errors from parsing match ErrParsingConfig with errors.Is.
package config
