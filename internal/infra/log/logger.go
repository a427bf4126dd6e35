package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger создаёт настроенный zerolog с выводом в stdout.
func NewLogger(appEnv string) zerolog.Logger {
	return New(appEnv, os.Stdout)
}

// New создаёт zerolog, пишущий в w. В окружении dev включается debug.
func New(appEnv string, w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	switch appEnv {
	case "dev":
		level = zerolog.DebugLevel
	case "test":
		level = zerolog.WarnLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(w).With().Timestamp().Logger().Level(level)
}

// Component возвращает дочерний логгер с полем component.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
