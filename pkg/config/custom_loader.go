package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from the given .env files.
// With no arguments it loads the default .env from the current working
// directory. Later files take precedence over earlier ones and over
// variables already present in the environment. Unlike the implicit load
// performed by Load, missing files are reported as errors.
func LoadEnv(filenames ...string) error {
	if err := godotenv.Overload(filenames...); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(filenames ...string) {
	if err := LoadEnv(filenames...); err != nil {
		panic(fmt.Sprintf("Failed to load env files: %v", err))
	}
}

// ResetCache clears all cached configurations. Intended for tests where the
// process environment changes between cases.
func ResetCache() {
	globalCache.mu.Lock()
	defer globalCache.mu.Unlock()
	globalCache.values = make(map[string]any)
	globalCache.onces = make(map[string]*sync.Once)
}

// ForceReloadConfig re-parses the environment into v, replacing any cached
// value for its type.
func ForceReloadConfig[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	typeName := getTypeName[T]()
	globalCache.mu.Lock()
	globalCache.values[typeName] = *v
	globalCache.onces[typeName] = new(sync.Once)
	globalCache.mu.Unlock()
	return nil
}
