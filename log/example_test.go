package log

import (
	"context"
	"log/slog"
	"os"
)

func Example_basic() {
	logger := Make(os.Stdout)
	logger.Info("parse complete", slog.Int("definitions", 2))
}

func Example_configuration() {
	logger := Make(os.Stdout,
		WithLevel(LevelDebug),
		WithTimeLayout("RFC3339Nano"),
		WithCallsite(true))

	logger.Debug("debug message with callsite info")
}

func Example_levels() {
	logger := Make(os.Stdout, WithLevel(LevelWarn))

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("empty pipeline", slog.Int("offset", 14))
	logger.Error("wrong name of pipe", slog.String("name", "sink"))
}

func Example_textFormat() {
	logger := Make(os.Stdout, WithFormat(FormatText))
	logger.Info("text format message", slog.String("file", "pipelines.flow"))
}

func Example_withAttributes() {
	// Create a logger with persistent attributes
	logger := Make(os.Stdout)
	logger = logger.With(slog.String("source", "WORKFLOW"))

	logger.Info("building workflow")
	logger.Debug("pre-declared output pipes", slog.Int("count", 4))
}

func Example_withContext() {
	type compileIDKey struct{}

	// Create a context identifying one compilation run
	ctx := context.WithValue(context.Background(), compileIDKey{}, "run-7")

	logger := Make(os.Stdout)

	// Use context-aware logging methods
	logger.InfoContext(ctx, "parsing source with context")
	logger.DebugContext(ctx, "definition registered", slog.String("name", "main"))
}
