package circuit

import (
	"github.com/pathwork/circuit/pkg/circuit/journal"
	"github.com/pathwork/circuit/pkg/circuit/observability"
)

// Runner dispatches a single node. The default runner calls the node
// directly; WithRunner swaps it so tracing and instrumentation can wrap
// dispatch without touching the execution loop.
type Runner[S any] func(ctx Context, node Node[S], sig Signal, state S) (Signal, S, error)

// runConfig holds configuration for circuit execution.
type runConfig[S any] struct {
	runner         Runner[S]
	maxSteps       int
	runID          string
	metrics        observability.MetricsRecorder
	spans          observability.SpanManager
	tracingEnabled bool
	journalStore   journal.Store
	journalFatal   bool
}

// defaultRunConfig returns the default execution configuration:
// direct dispatch, no step limit, observability disabled.
func defaultRunConfig[S any]() runConfig[S] {
	return runConfig[S]{
		runner:  directRunner[S],
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// directRunner is the default Runner: a plain call.
func directRunner[S any](ctx Context, node Node[S], sig Signal, state S) (Signal, S, error) {
	return node.Call(ctx, sig, state)
}

// RunOption configures execution behavior.
type RunOption[S any] func(*runConfig[S])

// WithRunner replaces the dispatch function.
// Passing nil restores the default direct call.
func WithRunner[S any](r Runner[S]) RunOption[S] {
	return func(c *runConfig[S]) {
		if r == nil {
			r = directRunner[S]
		}
		c.runner = r
	}
}

// WithMaxSteps sets an opt-in limit on node dispatches.
//
// By default there is no limit: a cyclic circuit with no reachable terminal
// runs forever, which is a malformed graph and a caller error. The limit
// exists as a guard for tests and untrusted wirings; exceeding it returns
// a MaxStepsError.
func WithMaxSteps[S any](n int) RunOption[S] {
	return func(c *runConfig[S]) {
		if n > 0 {
			c.maxSteps = n
		}
	}
}

// WithRunID overrides the run identifier used for logging, tracing, and
// journal entries. Defaults to the Context's run ID.
func WithRunID[S any](id string) RunOption[S] {
	return func(c *runConfig[S]) {
		c.runID = id
	}
}

// WithMetrics enables OpenTelemetry metrics for this run.
// Uses the global OTel meter provider.
func WithMetrics[S any]() RunOption[S] {
	return func(c *runConfig[S]) {
		c.metrics = observability.NewMetricsRecorder()
	}
}

// WithTracing enables OpenTelemetry tracing for this run:
// one run span with a child span per node dispatch.
// Uses the global OTel tracer provider.
func WithTracing[S any]() RunOption[S] {
	return func(c *runConfig[S]) {
		c.spans = observability.NewSpanManager()
		c.tracingEnabled = true
	}
}

// WithJournal records every executed step to the given store.
// Journal failures are logged and skipped unless WithJournalFailureFatal
// is also set.
func WithJournal[S any](store journal.Store) RunOption[S] {
	return func(c *runConfig[S]) {
		c.journalStore = store
	}
}

// WithJournalFailureFatal makes journal append failures abort the run.
func WithJournalFailureFatal[S any]() RunOption[S] {
	return func(c *runConfig[S]) {
		c.journalFatal = true
	}
}
