package log

import (
	"context"
	"log/slog"
	"os"
)

// defaultLog is the package-level [Logger] used by the package-level
// Trace/Debug/Info/Warn/Error functions.
var defaultLog = Make(os.Stderr)

// Config applies opts on top of the package-level default logger's current
// configuration.
// It returns the previous [Logger] so callers can restore it, e.g. in tests.
func Config(opts ...Option) Logger {
	previous := defaultLog
	defaultLog = defaultLog.Wrap(opts...)

	return previous
}

// Default returns the current package-level default [Logger].
func Default() Logger {
	return defaultLog
}

// TraceContext logs a message at Trace level on the default logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.TraceContext(ctx, msg, attrs...)
}

// Trace logs a message at Trace level on the default logger.
func Trace(msg string, attrs ...slog.Attr) {
	defaultLog.Trace(msg, attrs...)
}

// DebugContext logs a message at Debug level on the default logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.DebugContext(ctx, msg, attrs...)
}

// Debug logs a message at Debug level on the default logger.
func Debug(msg string, attrs ...slog.Attr) {
	defaultLog.Debug(msg, attrs...)
}

// InfoContext logs a message at Info level on the default logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.InfoContext(ctx, msg, attrs...)
}

// Info logs a message at Info level on the default logger.
func Info(msg string, attrs ...slog.Attr) {
	defaultLog.Info(msg, attrs...)
}

// WarnContext logs a message at Warn level on the default logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.WarnContext(ctx, msg, attrs...)
}

// Warn logs a message at Warn level on the default logger.
func Warn(msg string, attrs ...slog.Attr) {
	defaultLog.Warn(msg, attrs...)
}

// ErrorContext logs a message at Error level on the default logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.ErrorContext(ctx, msg, attrs...)
}

// Error logs a message at Error level on the default logger.
func Error(msg string, attrs ...slog.Attr) {
	defaultLog.Error(msg, attrs...)
}
