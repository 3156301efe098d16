package utils

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger configures the global zerolog logger. Development gets a
// human-readable console writer at debug level; everything else gets JSON at
// info level.
func SetupLogger(goEnv string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = os.Stdout
	level := zerolog.InfoLevel
	if goEnv == "" || goEnv == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05"}
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger

	return logger
}
