// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup installs the global logger. Pretty selects the human-readable
// console writer used in development; otherwise lines are JSON.
func Setup(level string, pretty bool) {
	setup(os.Stderr, level, pretty)
}

func setup(out io.Writer, level string, pretty bool) {
	zerolog.TimeFieldFormat = time.RFC3339

	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if err != nil {
		log.Warn().Str("level", level).Msg("unknown log level, using info")
	}
}
