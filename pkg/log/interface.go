// Package log provides a structured logging interface for housefit
// fitting and evaluation runs.
//
// The interface is slog-compatible and backed by zerolog. Keys from
// attributes.go keep field names consistent across packages.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("model_selection").With(
//	    log.ModelNameKey, "Ridge",
//	)
//	logger.Info("Cross-validation finished",
//	    log.CVFoldsKey, 5,
//	    log.R2ScoreKey, 0.61,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are passed as alternating key/value pairs. When the first field
// passed to Error is an error value, implementations attach it as the
// record's error together with its stack trace.
type Logger interface {
	// Debug logs detailed diagnostic information such as per-fold scores.
	Debug(msg string, fields ...any)

	// Info logs general progress of a pipeline.
	Info(msg string, fields ...any)

	// Warn logs recoverable problems, e.g. a skipped CSV row or a
	// fallback to synthetic data.
	Warn(msg string, fields ...any)

	// Error logs failures. If the first field is an error it is handled
	// specially:
	//
	//	logger.Error("Comparison failed", err, log.OperationKey, "cross_validate")
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates and configures loggers. It allows tests to swap
// the zerolog-backed provider for TestLoggerProvider.
type LoggerProvider interface {
	GetLogger() Logger
	GetLoggerWithName(name string) Logger
	SetLevel(level Level)
}
