// Package observability provides structured logging, metrics, and tracing
// for circuit execution.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// Everything is opt-in; no-op implementations exist for the disabled case.
// None of it participates in transition logic.
package observability

import (
	"log/slog"
)

// LogRunStart logs the start of a circuit run.
func LogRunStart(logger *slog.Logger, circuit, runID string) {
	if logger == nil {
		return
	}
	logger.Info("circuit run starting",
		slog.String("circuit", circuit),
		slog.String("run_id", runID),
	)
}

// LogRunComplete logs successful circuit run completion.
func LogRunComplete(logger *slog.Logger, circuit, runID string, durationMs float64, steps int) {
	if logger == nil {
		return
	}
	logger.Info("circuit run completed",
		slog.String("circuit", circuit),
		slog.String("run_id", runID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("steps", steps),
	)
}

// LogRunError logs circuit run failure.
func LogRunError(logger *slog.Logger, circuit, runID string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("circuit run failed",
		slog.String("circuit", circuit),
		slog.String("run_id", runID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogNodeStart logs node dispatch start.
func LogNodeStart(logger *slog.Logger, node string) {
	if logger == nil {
		return
	}
	logger.Debug("node starting",
		slog.String("node", node),
	)
}

// LogNodeComplete logs successful node completion.
func LogNodeComplete(logger *slog.Logger, node string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("node completed",
		slog.String("node", node),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogNodeError logs node dispatch error.
func LogNodeError(logger *slog.Logger, node string, err error) {
	if logger == nil {
		return
	}
	logger.Error("node failed",
		slog.String("node", node),
		slog.String("error", err.Error()),
	)
}

// LogJournalAppend logs a recorded journal step.
func LogJournalAppend(logger *slog.Logger, node string, seq int) {
	if logger == nil {
		return
	}
	logger.Debug("journal step recorded",
		slog.String("node", node),
		slog.Int("seq", seq),
	)
}

// LogJournalError logs a journal append failure (non-fatal).
func LogJournalError(logger *slog.Logger, node string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("journal append failed",
		slog.String("node", node),
		slog.String("error", err.Error()),
	)
}
