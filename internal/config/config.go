// Package config loads estimator settings from the environment and from
// study definition files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the environment-level defaults of the estimator
type Config struct {
	Workers    int
	Iterations int
	Alpha      float64
	Budget     time.Duration
}

// Load reads configuration from the environment, layering an optional .env
// file underneath. Unset variables fall back to defaults.
func Load() (*Config, error) {
	// Missing .env is fine; the environment still applies
	_ = godotenv.Load()

	cfg := &Config{
		Workers:    0, // 0 lets the estimator size the pool to the CPU count
		Iterations: 1000,
		Alpha:      0.005,
	}

	var err error
	if cfg.Workers, err = intEnv("GOPOWER_WORKERS", cfg.Workers); err != nil {
		return nil, err
	}
	if cfg.Iterations, err = intEnv("GOPOWER_ITERATIONS", cfg.Iterations); err != nil {
		return nil, err
	}
	if cfg.Alpha, err = floatEnv("GOPOWER_ALPHA", cfg.Alpha); err != nil {
		return nil, err
	}
	budgetMs, err := intEnv("GOPOWER_BUDGET_MS", 0)
	if err != nil {
		return nil, err
	}
	cfg.Budget = time.Duration(budgetMs) * time.Millisecond

	if cfg.Iterations <= 0 {
		return nil, fmt.Errorf("GOPOWER_ITERATIONS must be positive, got %d", cfg.Iterations)
	}
	if cfg.Alpha <= 0 || cfg.Alpha >= 1 {
		return nil, fmt.Errorf("GOPOWER_ALPHA must be in (0, 1), got %f", cfg.Alpha)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("GOPOWER_WORKERS must be non-negative, got %d", cfg.Workers)
	}
	return cfg, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q: %w", key, raw, err)
	}
	return v, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q: %w", key, raw, err)
	}
	return v, nil
}
