// Package log configures the global zerolog logger for marquee.
// Storage and ingestion failures are logged here and absorbed; nothing in
// this application treats a logging path as fatal.
package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once sync.Once
	base zerolog.Logger
)

// Configure initialises the global logger exactly once. Level falls back to
// MARQUEE_LOG_LEVEL and then to "warn"; a CLI run should stay quiet unless
// something actually degrades.
func Configure(level string, out io.Writer) {
	once.Do(func() {
		lvl := zerolog.WarnLevel
		if level == "" {
			level = os.Getenv("MARQUEE_LOG_LEVEL")
		}
		if level != "" {
			if parsed, err := zerolog.ParseLevel(level); err == nil {
				lvl = parsed
			}
		}
		zerolog.TimeFieldFormat = time.RFC3339

		if out == nil {
			out = zerolog.ConsoleWriter{Out: os.Stderr}
		}
		base = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	})
}

// Logger returns the configured global logger. Safe to call before
// Configure: it then configures with defaults.
func Logger() zerolog.Logger {
	Configure("", nil)
	return base
}

// With returns the global logger tagged with a component name.
func With(component string) zerolog.Logger {
	return Logger().With().Str("component", component).Logger()
}
