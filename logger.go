package flanngo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with flanngo-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})),
	}
}

// NoopLogger creates a Logger that discards all log output.
// It is the default for new indexes.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.Level(1000), // Unreachable level
		})),
	}
}

// LogBuild logs an index construction.
func (l *Logger) LogBuild(algorithm Algorithm, size, dimension int, err error) {
	if err != nil {
		l.Error("build failed",
			"algorithm", algorithm.String(),
			"error", err,
		)
	} else {
		l.Info("index built",
			"algorithm", algorithm.String(),
			"size", size,
			"dimension", dimension,
		)
	}
}

// LogAdd logs an add operation.
func (l *Logger) LogAdd(count int, err error) {
	if err != nil {
		l.Error("add failed",
			"count", count,
			"error", err,
		)
	} else {
		l.Debug("add completed",
			"count", count,
		)
	}
}

// LogSearch logs a k-NN search operation.
func (l *Logger) LogSearch(k int, resultsFound int, err error) {
	if err != nil {
		l.Error("search failed",
			"k", k,
			"error", err,
		)
	} else {
		l.Debug("search completed",
			"k", k,
			"results", resultsFound,
		)
	}
}

// LogRadiusSearch logs a radius search operation.
func (l *Logger) LogRadiusSearch(radius float64, resultsFound int, err error) {
	if err != nil {
		l.Error("radius search failed",
			"radius", radius,
			"error", err,
		)
	} else {
		l.Debug("radius search completed",
			"radius", radius,
			"results", resultsFound,
		)
	}
}
