// Package logging wraps zerolog with the split stdout/stderr writer the
// rest of the Harmony stack expects: info/warn/debug go to stdout, error
// and above go to stderr, so container log collectors can route severity
// independently of stream multiplexing.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var base zerolog.Logger

func init() {
	level := parseLevel(os.Getenv("HARMONY_LOG_LEVEL"))
	writer := zerolog.MultiLevelWriter(
		levelWriter{
			Writer: zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339},
			levels: []zerolog.Level{zerolog.DebugLevel, zerolog.InfoLevel, zerolog.WarnLevel},
		},
		levelWriter{
			Writer: zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339},
			levels: []zerolog.Level{zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel},
		},
	)
	base = zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func parseLevel(raw string) zerolog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "":
		return zerolog.InfoLevel
	default:
		return zerolog.InfoLevel
	}
}

// New returns a logger scoped to component, e.g. "scheduler" or
// "coordinator". Every log line from the returned logger carries a
// "component" field so operators can filter by subsystem.
func New(component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}

type levelWriter struct {
	io.Writer
	levels []zerolog.Level
}

func (w levelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	for _, l := range w.levels {
		if l == level {
			return w.Write(p)
		}
	}
	return len(p), nil
}
