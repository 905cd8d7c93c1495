// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultPort                 = "8080"
	DefaultMaxRangeDays         = 365
	DefaultDashboardRecentLimit = 10
	DefaultDashboardRecentDays  = 30
)

// OTel exporter selection values.
const (
	OTelExporterNone     = "none"
	OTelExporterStdout   = "stdout"
	OTelExporterOTLPHTTP = "otlp-http"
	OTelExporterOTLPGRPC = "otlp-grpc"
)

// Config holds all configuration for the application.
type Config struct {
	DatabaseURL          string
	Port                 string
	LogLevel             string
	MaxRangeDays         int
	DashboardRecentLimit int
	DashboardRecentDays  int
	OTelExporter         string
	OTelEndpoint         string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		Port:                 os.Getenv("PORT"),
		LogLevel:             os.Getenv("LOG_LEVEL"),
		OTelExporter:         os.Getenv("OTEL_EXPORTER"),
		OTelEndpoint:         os.Getenv("OTEL_ENDPOINT"),
		MaxRangeDays:         DefaultMaxRangeDays,
		DashboardRecentLimit: DefaultDashboardRecentLimit,
		DashboardRecentDays:  DefaultDashboardRecentDays,
	}

	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.OTelExporter == "" {
		cfg.OTelExporter = OTelExporterNone
	}

	if v := os.Getenv("MAX_RANGE_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxRangeDays = n
		}
	}
	if v := os.Getenv("DASHBOARD_RECENT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DashboardRecentLimit = n
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	var errs []string

	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}

	switch c.OTelExporter {
	case OTelExporterNone, OTelExporterStdout, OTelExporterOTLPHTTP, OTelExporterOTLPGRPC:
	default:
		errs = append(errs, fmt.Sprintf("OTEL_EXPORTER %q is not one of none, stdout, otlp-http, otlp-grpc", c.OTelExporter))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
