// Package observability provides production-grade observability features
// for pipevar: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds engine identity to a logger.
// Returns a new logger with an engine_id field.
func EnrichLogger(logger *slog.Logger, engineID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("engine_id", engineID))
}

// LogSubstituteComplete logs a finished substitution call.
func LogSubstituteComplete(logger *slog.Logger, formatContext string, exprCount int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("substitution completed",
		slog.String("context", formatContext),
		slog.Int("expressions", exprCount),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogValidation logs a validation outcome.
func LogValidation(logger *slog.Logger, valid bool, missing int, invalidDefaults int) {
	if logger == nil {
		return
	}
	logger.Debug("template validated",
		slog.Bool("valid", valid),
		slog.Int("missing_variables", missing),
		slog.Int("invalid_defaults", invalidDefaults),
	)
}

// LogConvergence logs a finished self-resolution loop.
func LogConvergence(logger *slog.Logger, passes int, converged bool) {
	if logger == nil {
		return
	}
	if converged {
		logger.Debug("self-resolution converged",
			slog.Int("passes", passes),
		)
		return
	}
	logger.Warn("self-resolution did not converge, returning best-effort result",
		slog.Int("passes", passes),
	)
}

// LogCacheEviction logs that the cache size bound forced evictions.
func LogCacheEviction(logger *slog.Logger, evictions int64, entries int) {
	if logger == nil {
		return
	}
	logger.Debug("cache evictions",
		slog.Int64("evictions", evictions),
		slog.Int("entries", entries),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000.0
	}
}
