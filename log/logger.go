// Package log is the small structured logging facade used by archsketch.
// StructuredLogger writes through slog; NullLogger discards.
package log

import (
	"context"
	"strings"
)

type ctxKey struct{}

// Logger is satisfied by StructuredLogger and NullLogger. Arguments after
// the message are slog-style key-value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// WithLogger attaches logger to ctx.
func WithLogger(ctx context.Context, logger Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, logger)
}

// Ctx returns the logger attached to ctx. Contexts without one get a
// NullLogger so library code never writes unexpectedly.
func Ctx(ctx context.Context) Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(Logger); ok && logger != nil {
			return logger
		}
	}
	return NewNullLogger()
}

// LevelFromString parses a level name. Unknown names map to LevelInfo.
func LevelFromString(value string) Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}
