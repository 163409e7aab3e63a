// Package config reads the payroll service configuration.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultRunAddress   = "localhost:8080"
	defaultSyncInterval = 5 * time.Minute
	defaultWorkers      = 4
)

// Config holds the payroll service settings.
type Config struct {
	RunAddress            string        `env:"RUN_ADDRESS"`
	DatabaseURI           string        `env:"DATABASE_URI"`
	DirectoryAddress      string        `env:"DIRECTORY_ADDRESS"`
	DirectorySyncInterval time.Duration `env:"DIRECTORY_SYNC_INTERVAL"`
	PayrollWorkers        int           `env:"PAYROLL_WORKERS"`
	CORSOrigins           []string      `env:"CORS_ORIGINS" envSeparator:","`
}

// Parse reads the configuration from an optional .env file, environment variables
// and command line flags. Environment variables take precedence over flags.
func Parse() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envCfg := *cfg

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.DirectoryAddress, "r", "", "employee directory address")
	flag.DurationVar(&cfg.DirectorySyncInterval, "s", defaultSyncInterval, "employee directory sync interval")
	flag.IntVar(&cfg.PayrollWorkers, "w", defaultWorkers, "number of payroll workers")

	flag.Parse()

	if envCfg.RunAddress != "" {
		cfg.RunAddress = envCfg.RunAddress
	}
	if envCfg.DatabaseURI != "" {
		cfg.DatabaseURI = envCfg.DatabaseURI
	}
	if envCfg.DirectoryAddress != "" {
		cfg.DirectoryAddress = envCfg.DirectoryAddress
	}
	if envCfg.DirectorySyncInterval != 0 {
		cfg.DirectorySyncInterval = envCfg.DirectorySyncInterval
	}
	if envCfg.PayrollWorkers != 0 {
		cfg.PayrollWorkers = envCfg.PayrollWorkers
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}
	if cfg.PayrollWorkers < 1 {
		return nil, fmt.Errorf("payroll workers must be positive, got %d", cfg.PayrollWorkers)
	}

	origins := make([]string, 0, len(cfg.CORSOrigins))
	for _, o := range cfg.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cfg.CORSOrigins = origins

	return cfg, nil
}
