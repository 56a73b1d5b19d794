package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// cache keeps one parsed copy per configuration type.
type cache struct {
	mu     sync.Mutex
	values map[reflect.Type]any
}

var (
	store = &cache{values: make(map[reflect.Type]any)}

	dotenvOnce sync.Once
)

// LoadEnv reads the given .env files into the process environment.
// Variables already set in the environment win; between files, earlier
// files win. With no paths it reads ./.env.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv is LoadEnv that panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// Load parses the environment into v. The default .env file is read once
// per process if present. Each configuration type is parsed once; later
// calls get the cached copy.
//
// Example:
//
//	var cfg session.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		// a missing .env file is fine
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	key := typeKey[T]()

	store.mu.Lock()
	defer store.mu.Unlock()

	if cached, ok := store.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	store.values[key] = parsed
	*v = parsed
	return nil
}

// MustLoad is Load that panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// Cached returns the previously loaded value of type T.
func Cached[T any]() (T, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	cached, ok := store.values[typeKey[T]()]
	if !ok {
		var zero T
		return zero, ErrConfigNotLoaded
	}
	return cached.(T), nil
}

// Reload drops the cached value of type T and parses it again.
func Reload[T any](v *T) error {
	store.mu.Lock()
	delete(store.values, typeKey[T]())
	store.mu.Unlock()
	return Load(v)
}

// ResetCache forgets every cached configuration. Intended for tests.
func ResetCache() {
	store.mu.Lock()
	clear(store.values)
	store.mu.Unlock()
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}
