/*
Package circuit provides a minimal deterministic directed-graph execution
engine.

# Overview

A circuit is a flowchart of connected tasks (nodes) and signal-labeled
transitions (edges). The engine walks it from a start node, dispatching each
node and following the signal it returns, until a terminal node is reached.
The engine never decides a path itself - decision logic lives entirely in the
signals the tasks return.

The library provides:
  - Type-safe generics for the state flowing through a circuit
  - A wiring compiler (Builder) translating ordered instructions into an
    immutable transition table
  - Structural rewriting (Rewrite) producing a new, independent circuit from
    an existing one without mutating the original
  - Opt-in OpenTelemetry metrics and tracing, and a persistent run journal

# Basic Usage

Wire a circuit with the Builder, then run the resulting Activity:

	type Order struct {
	    Total   int
	    Charged bool
	}

	charge := circuit.TaskFunc[Order](func(ctx circuit.Context, sig circuit.Signal, o Order) (circuit.Signal, Order, error) {
	    o.Charged = true
	    return circuit.Right, o, nil
	})

	act, err := circuit.NewBuilder[Order]("payment").
	    Attach("charge", charge, circuit.Edge{}).
	    End("success", map[string]any{"role": "success"}, circuit.Edge{}, circuit.From("charge")).
	    Build()
	if err != nil {
	    log.Fatal(err)
	}

	ctx := circuit.NewContext(context.Background())
	sig, result, err := act.Run(ctx, Order{Total: 99})

Run returns the signal emitted by the terminal node's own dispatch, so the
signal identifies which end the circuit halted on.

# Branching

A node branches by returning different signals; every signal a node can emit
must be explicitly wired. Right and Left are the builtin pair for
success/failure railways:

	validate := circuit.TaskFunc[Order](func(ctx circuit.Context, sig circuit.Signal, o Order) (circuit.Signal, Order, error) {
	    if o.Total <= 0 {
	        return circuit.Left, o, nil
	    }
	    return circuit.Right, o, nil
	})

An unwired signal is always an error (IllegalSignalError), never silently
ignored.

# Rewriting

Rewrite deep-copies an activity's table and applies builder instructions to
the copy, so larger circuits are assembled from smaller ones without mutating
the originals:

	audited, err := circuit.Rewrite(act, "payment-audited", func(b *circuit.Builder[Order]) {
	    b.InsertBefore("success", "audit", auditNode, circuit.Edge{}, nil)
	})

# Observability

Structured logging uses the Context's slog.Logger. Metrics, tracing, and the
run journal are opt-in per run:

	sig, result, err := act.Run(ctx, order,
	    circuit.WithTracing[Order](),
	    circuit.WithJournal[Order](store))

The execution loop is strictly sequential: one path, one node at a time, no
suspension points. Circuits are immutable after Build, so a single activity
can serve concurrent Run calls.
*/
package circuit
