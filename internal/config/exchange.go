package config

import (
	"os"
	"strings"
)

// ExchangeKeys is the per-exchange API credential triple. Unset
// variables yield empty strings; detecting unusable keys is the
// caller's responsibility.
type ExchangeKeys struct {
	APIKey      string
	APISecret   string
	APIPassword string
}

// ResolveExchangeKeys reads {EXCHANGE}_API_KEY, {EXCHANGE}_API_SECRET
// and {EXCHANGE}_API_PASSWORD for the given exchange name
// (case-insensitive). Keys are resolved fresh on every call and never
// cached, so rotation takes effect without a restart.
func ResolveExchangeKeys(exchange string) ExchangeKeys {
	prefix := strings.ToUpper(strings.TrimSpace(exchange))
	return ExchangeKeys{
		APIKey:      os.Getenv(prefix + "_API_KEY"),
		APISecret:   os.Getenv(prefix + "_API_SECRET"),
		APIPassword: os.Getenv(prefix + "_API_PASSWORD"),
	}
}
