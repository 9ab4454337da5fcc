package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// RuntimeConfig holds process-level settings that never reach the generated
// document. Values come from the environment and may be overridden by flags.
type RuntimeConfig struct {
	LogLevel        string  `env:"SCENARIOGEN_LOG_LEVEL" envDefault:"info"`
	LogFormat       string  `env:"SCENARIOGEN_LOG_FORMAT" envDefault:"text"`
	Seed            int64   `env:"SCENARIOGEN_SEED"`
	Workers         int     `env:"SCENARIOGEN_WORKERS" envDefault:"1"`
	HTTPAddr        string  `env:"SCENARIOGEN_HTTP_ADDR" envDefault:":8080"`
	GRPCAddr        string  `env:"SCENARIOGEN_GRPC_ADDR" envDefault:":50051"`
	MaxTasks        uint64  `env:"SCENARIOGEN_MAX_TASKS" envDefault:"1000000"`
	OTelEndpoint    string  `env:"SCENARIOGEN_OTEL_ENDPOINT"`
	OTelEnabled     bool    `env:"SCENARIOGEN_OTEL_ENABLED" envDefault:"true"`
	OTelSampleRatio float64 `env:"SCENARIOGEN_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// LoadRuntimeConfig loads RuntimeConfig from environment variables
func LoadRuntimeConfig() (RuntimeConfig, error) {
	var cfg RuntimeConfig
	if err := env.Parse(&cfg); err != nil {
		return RuntimeConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks runtime settings
func (c RuntimeConfig) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.LogFormat)
	}
	if c.OTelSampleRatio < 0 || c.OTelSampleRatio > 1 {
		return fmt.Errorf("otel sample ratio must be within [0, 1], got %g", c.OTelSampleRatio)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}
