package config

import (
	"errors"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	SeedFile    string `envconfig:"SEED_FILE" default:""`
}

// Load reads configuration from environment variables into a Config struct.
// envconfig's required check only fires for unset variables, so a set-but-empty
// DATABASE_URL is rejected here.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL must not be empty")
	}
	return &cfg, nil
}
