// Package logger wraps zerolog behind the logging helpers used across the
// service. Log lines carry the request id when one is present in the context.
package logger

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// Disabled until InitLogging runs, so packages can log safely under test.
var log = zerolog.Nop()

// InitLogging configures the process logger. When filePath is non-empty the
// log is appended to that file as JSON; otherwise it goes to stdout.
func InitLogging(filePath string) {
	var out io.Writer = os.Stdout
	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err == nil {
			out = f
		}
	}
	log = zerolog.New(out).With().Timestamp().Logger()
}

// SetLevel adjusts the global level ("debug", "info", "warn", "error").
func SetLevel(level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
}

// WithRequestID returns a context whose log lines include the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func event(ctx context.Context, e *zerolog.Event) *zerolog.Event {
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		e = e.Str("request_id", id)
	}
	return e
}

func DebugLog(ctx context.Context, format string, v ...interface{}) {
	event(ctx, log.Debug()).Msgf(format, v...)
}

func InfoLog(ctx context.Context, format string, v ...interface{}) {
	event(ctx, log.Info()).Msgf(format, v...)
}

func WarnLog(ctx context.Context, format string, v ...interface{}) {
	event(ctx, log.Warn()).Msgf(format, v...)
}

func ErrorLog(ctx context.Context, format string, v ...interface{}) {
	event(ctx, log.Error()).Msgf(format, v...)
}
