package logging

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets the global level and routes logs to stderr so command output
// on stdout stays clean. debug forces the debug level and adds callers.
func Init(level string, debug bool) zerolog.Logger {
	switch {
	case debug || level == "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case level == "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case level == "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if debug {
		logger = logger.With().Caller().Logger()
	}
	log.Logger = logger
	return logger
}
