// Package config loads process defaults from the environment. Command-line
// flags override every value here.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the HEREDITY_* settings.
type Env struct {
	Threads        int    `env:"HEREDITY_THREADS" envDefault:"0"`
	LogLevel       string `env:"HEREDITY_LOG_LEVEL" envDefault:"warn"`
	MaxIndividuals int    `env:"HEREDITY_MAX_INDIVIDUALS" envDefault:"12"`
	MetricsFile    string `env:"HEREDITY_METRICS_FILE"`
	OtelEndpoint   string `env:"HEREDITY_OTEL_ENDPOINT"`
}

// Load reads Env from the process environment.
func Load() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// LoadFrom reads Env from an explicit variable map; used by tests and by
// callers that sandbox the environment.
func LoadFrom(vars map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
