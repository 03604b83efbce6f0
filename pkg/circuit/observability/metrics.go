package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records circuit execution metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordNodeExecution records a node dispatch with its duration and error status.
	RecordNodeExecution(ctx context.Context, node string, duration time.Duration, err error)

	// RecordRun records a circuit run completion.
	RecordRun(ctx context.Context, circuit string, success bool, duration time.Duration)

	// RecordJournalAppend records a journal step append.
	RecordJournalAppend(ctx context.Context, node string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	nodeExecutions metric.Int64Counter
	nodeLatency    metric.Float64Histogram
	nodeErrors     metric.Int64Counter
	runs           metric.Int64Counter
	runLatency     metric.Float64Histogram
	journalAppends metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the default OTel metrics instance.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("circuit")

	nodeExecutions, err := meter.Int64Counter("circuit.node.executions",
		metric.WithDescription("Number of node dispatches"),
	)
	if err != nil {
		return nil, err
	}

	nodeLatency, err := meter.Float64Histogram("circuit.node.latency_ms",
		metric.WithDescription("Node dispatch latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	nodeErrors, err := meter.Int64Counter("circuit.node.errors",
		metric.WithDescription("Number of node dispatch errors"),
	)
	if err != nil {
		return nil, err
	}

	runs, err := meter.Int64Counter("circuit.run.total",
		metric.WithDescription("Number of circuit runs"),
	)
	if err != nil {
		return nil, err
	}

	runLatency, err := meter.Float64Histogram("circuit.run.latency_ms",
		metric.WithDescription("Circuit run latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	journalAppends, err := meter.Int64Counter("circuit.journal.appends",
		metric.WithDescription("Number of journal steps recorded"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		nodeExecutions: nodeExecutions,
		nodeLatency:    nodeLatency,
		nodeErrors:     nodeErrors,
		runs:           runs,
		runLatency:     runLatency,
		journalAppends: journalAppends,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordNodeExecution records a node dispatch.
func (m *otelMetrics) RecordNodeExecution(ctx context.Context, node string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("node", node),
	}

	m.nodeExecutions.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.nodeLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.nodeErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordRun records a circuit run.
func (m *otelMetrics) RecordRun(ctx context.Context, circuit string, success bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("circuit", circuit),
		attribute.Bool("success", success),
	}
	m.runs.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.runLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordJournalAppend records a journal step append.
func (m *otelMetrics) RecordJournalAppend(ctx context.Context, node string) {
	attrs := []attribute.KeyValue{
		attribute.String("node", node),
	}
	m.journalAppends.Add(ctx, 1, metric.WithAttributes(attrs...))
}
