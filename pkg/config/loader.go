package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// registry holds one parsed value per configuration type.
type registry struct {
	mu     sync.Mutex
	values map[reflect.Type]any
}

var (
	loaded = &registry{values: make(map[reflect.Type]any)}

	dotenvOnce sync.Once
)

// Load parses environment variables into v according to its `env` tags.
//
// The default .env file is read on first use if present. Each configuration
// type is parsed once; later calls for the same type copy the cached value,
// so environment changes after the first Load are not observed (see ForceReload).
//
//	type PaywallConfig struct {
//		StoreKey string        `env:"PAYWALL_STORE_KEY" envDefault:"paywall:subscription"`
//		Latency  time.Duration `env:"PAYWALL_UPGRADE_LATENCY" envDefault:"1s"`
//	}
//
//	var cfg PaywallConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() {
		// a missing .env is fine
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()

	loaded.mu.Lock()
	defer loaded.mu.Unlock()

	if cached, ok := loaded.values[key]; ok {
		*v = cached.(T)
		return nil
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	loaded.values[key] = *v
	return nil
}

// MustLoad is like Load but panics on error.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// ForceReload drops the cached value for T and parses the environment again.
func ForceReload[T any](v *T) error {
	loaded.mu.Lock()
	delete(loaded.values, reflect.TypeFor[T]())
	loaded.mu.Unlock()
	return Load(v)
}

// ResetCache drops every cached configuration value.
func ResetCache() {
	loaded.mu.Lock()
	clear(loaded.values)
	loaded.mu.Unlock()
}

// LoadEnv reads the given .env files into the process environment, later files
// overriding earlier ones and the existing environment. With no paths it reads
// ./.env. Values already parsed by Load stay cached.
func LoadEnv(paths ...string) error {
	dotenvOnce.Do(func() {})
	if err := godotenv.Overload(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv is like LoadEnv but panics on error.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("failed to load env files: %v", err))
	}
}
