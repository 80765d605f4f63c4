// Package config is the single source of truth for credentials and
// trading parameters, resolved from the process environment once at
// startup and passed by value to every consumer.
package config

import (
	"fmt"
	"os"

	"trade-state/internal/logging"
)

// EnvLogLevel selects the global log level. Defaults to info.
const EnvLogLevel = "LOG_LEVEL"

// Config is the fully resolved process configuration.
type Config struct {
	Credentials Credentials
	Trading     TradingParams
	LogLevel    string
}

// Load resolves the full configuration from the environment:
// credentials, then trading parameters with overrides, then log level,
// then validation. Loading configures the process-wide logging sink as
// a side effect, before anything else logs.
//
// Missing credentials are a handled, degraded state (offline mode) and
// only produce a warning. An invalid trading parameter is the one
// fatal exit: Load returns an error and the caller must abort startup.
func Load() (*Config, error) {
	logLevel := os.Getenv(EnvLogLevel)
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel)
	logger := logging.Component("config")

	cfg := &Config{
		Credentials: ResolveCredentials(),
		Trading:     resolveTradingParams(logger),
		LogLevel:    logLevel,
	}

	if err := cfg.Trading.Validate(); err != nil {
		return nil, fmt.Errorf("invalid trading configuration: %w", err)
	}

	if cfg.Credentials.IsZero() {
		logger.Warn().Msg("firebase credentials not set - running in offline mode")
	}

	logger.Info().Str("log_level", logLevel).Msg("configuration validated")
	return cfg, nil
}
