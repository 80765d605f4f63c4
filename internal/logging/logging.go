// Package logging configures the process-wide zerolog sink. Setup is
// meant to be called once at startup, before any component logs.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup installs a console writer with RFC3339 timestamps on the global
// logger and applies the given level. An unknown level falls back to
// info rather than failing startup.
func Setup(level string) {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

// Component returns a logger tagged with the component name, so every
// line carries timestamp, component, severity and message.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
