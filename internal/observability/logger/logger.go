// Package logger implements the observability.Logger contract on top of
// zerolog, producing JSON entries with consistent service-level fields.
package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/munyokii/Ubuntu-Requests/internal/observability"
)

// ZerologLogger implements observability.Logger.
type ZerologLogger struct {
	log zerolog.Logger
}

// New creates a logger writing JSON to out (os.Stderr if nil). The level
// string accepts debug, info, warn and error; anything else means info.
func New(serviceName, level string, out io.Writer) *ZerologLogger {
	if out == nil {
		out = os.Stderr
	}

	log := zerolog.New(out).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	return &ZerologLogger{log: log}
}

// Info logs an informational message.
func (l *ZerologLogger) Info(ctx context.Context, msg string, fields observability.Fields) {
	l.log.Info().Fields(map[string]interface{}(fields)).Msg(msg)
}

// Error logs an error message with the associated error.
func (l *ZerologLogger) Error(ctx context.Context, msg string, err error, fields observability.Fields) {
	l.log.Error().Err(err).Fields(map[string]interface{}(fields)).Msg(msg)
}

// Warn logs a warning message.
func (l *ZerologLogger) Warn(ctx context.Context, msg string, fields observability.Fields) {
	l.log.Warn().Fields(map[string]interface{}(fields)).Msg(msg)
}

// Debug logs a debug message.
func (l *ZerologLogger) Debug(ctx context.Context, msg string, fields observability.Fields) {
	l.log.Debug().Fields(map[string]interface{}(fields)).Msg(msg)
}

// WithFields returns a new Logger with additional persistent fields.
func (l *ZerologLogger) WithFields(fields observability.Fields) observability.Logger {
	return &ZerologLogger{
		log: l.log.With().Fields(map[string]interface{}(fields)).Logger(),
	}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
