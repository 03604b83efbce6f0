package circuit

import (
	"context"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/pathwork/circuit/pkg/circuit/journal"
	"github.com/pathwork/circuit/pkg/circuit/observability"
)

// Run executes the circuit from the given node until a terminal node is
// reached. Returns the signal and state produced by the terminal node's own
// dispatch - the terminal is called once and its result, not a synthetic
// marker, is the circuit's result.
//
// Execution flow:
//  1. Dispatch the current node via the configured Runner
//  2. If the current node is terminal, stop and return its result
//  3. Resolve the next node from the transition table using the emitted signal
//  4. Repeat
//
// The engine never decides a path itself: routing is entirely driven by the
// signal each node returns. On error, the state at the point of failure is
// returned alongside the error.
func (c *Circuit[S]) Run(ctx Context, at Ref, state S, opts ...RunOption[S]) (sig Signal, result S, runErr error) {
	result = state
	if ctx == nil {
		return "", result, ErrNilContext
	}

	cfg := defaultRunConfig[S]()
	for _, opt := range opts {
		opt(&cfg)
	}

	runID := cfg.runID
	if runID == "" {
		runID = ctx.RunID()
	}

	logger := ctx.Logger()
	startTime := time.Now()
	observability.LogRunStart(logger, c.name, runID)

	var execCtx context.Context = ctx
	var runSpan trace.Span
	if cfg.tracingEnabled {
		execCtx, runSpan = cfg.spans.StartRunSpan(ctx, c.name, runID)
		defer func() {
			cfg.spans.EndSpanWithError(runSpan, runErr)
		}()
	}

	var steps int
	sig, result, steps, runErr = c.runLoop(execCtx, ctx, at, state, runID, &cfg)

	duration := time.Since(startTime)
	cfg.metrics.RecordRun(ctx, c.name, runErr == nil, duration)

	if runErr != nil {
		observability.LogRunError(logger, c.name, runID, runErr, float64(duration.Milliseconds()))
	} else {
		observability.LogRunComplete(logger, c.name, runID, float64(duration.Milliseconds()), steps)
	}

	return sig, result, runErr
}

// runLoop is the sequential execution loop. tracingCtx carries span context;
// cctx is the circuit Context. Returns the final signal, state, and step
// count.
func (c *Circuit[S]) runLoop(tracingCtx context.Context, cctx Context, at Ref, state S, runID string, cfg *runConfig[S]) (Signal, S, int, error) {
	current := at
	sig := Signal("")
	steps := 0
	seq := 0
	logger := cctx.Logger()

	for {
		steps++
		if cfg.maxSteps > 0 && steps > cfg.maxSteps {
			return sig, state, steps - 1, &MaxStepsError{Max: cfg.maxSteps, Node: c.NodeName(current)}
		}

		if !c.has(current) {
			return sig, state, steps - 1, &IllegalInputError{Circuit: c.name, Node: c.NodeName(current)}
		}

		// Cancellation is only observed between steps; dispatch is atomic.
		select {
		case <-cctx.Done():
			return sig, state, steps - 1, &CancellationError{Circuit: c.name, Node: c.NodeName(current), Cause: cctx.Err()}
		default:
		}

		name := c.NodeName(current)
		observability.LogNodeStart(logger, name)

		nodeTracingCtx := tracingCtx
		var nodeSpan trace.Span
		if cfg.tracingEnabled {
			nodeTracingCtx, nodeSpan = cfg.spans.StartNodeSpan(tracingCtx, name)
		}

		nodeStart := time.Now()
		inSig := sig
		var nodeErr error
		sig, state, nodeErr = c.dispatch(cctx, cfg, current, sig, state)
		nodeDuration := time.Since(nodeStart)

		cfg.metrics.RecordNodeExecution(nodeTracingCtx, name, nodeDuration, nodeErr)
		if cfg.tracingEnabled {
			cfg.spans.EndSpanWithError(nodeSpan, nodeErr)
		}

		if nodeErr != nil {
			observability.LogNodeError(logger, name, nodeErr)
			return sig, state, steps - 1, nodeErr
		}
		observability.LogNodeComplete(logger, name, float64(nodeDuration.Milliseconds()))

		if cfg.journalStore != nil {
			seq++
			if err := c.record(cctx, cfg, runID, seq, name, inSig, sig); err != nil {
				return sig, state, steps, err
			}
		}

		// Terminal membership takes precedence over further lookups: the
		// terminal's own dispatch result is the circuit's result.
		if c.IsTerminal(current) {
			return sig, state, steps, nil
		}

		next, err := c.Lookup(current, sig)
		if err != nil {
			return sig, state, steps, err
		}
		current = next
	}
}

// dispatch invokes the configured runner for one node with panic recovery.
func (c *Circuit[S]) dispatch(cctx Context, cfg *runConfig[S], ref Ref, sig Signal, state S) (outSig Signal, outState S, err error) {
	name := c.NodeName(ref)

	nodeCtx := cctx
	if ec, ok := cctx.(*executionContext); ok {
		nodeCtx = ec.withNode(name)
	}

	defer func() {
		if r := recover(); r != nil {
			outSig = sig
			outState = state
			err = &PanicError{Node: name, Value: r, Stack: string(debug.Stack())}
		}
	}()

	outSig, outState, err = cfg.runner(nodeCtx, c.nodes[ref], sig, state)
	if err != nil {
		return outSig, outState, &NodeError{Circuit: c.name, Node: name, Err: err}
	}
	return outSig, outState, nil
}

// record appends one step to the run journal.
func (c *Circuit[S]) record(cctx Context, cfg *runConfig[S], runID string, seq int, node string, in, out Signal) error {
	entry := journal.Entry{
		RunID: runID,
		Seq:   seq,
		Node:  node,
		In:    string(in),
		Out:   string(out),
		At:    time.Now().UTC(),
	}
	if err := cfg.journalStore.Append(entry); err != nil {
		if cfg.journalFatal {
			return &journal.AppendError{Node: node, Err: err}
		}
		observability.LogJournalError(cctx.Logger(), node, err)
		return nil
	}
	observability.LogJournalAppend(cctx.Logger(), node, seq)
	cfg.metrics.RecordJournalAppend(cctx, node)
	return nil
}
