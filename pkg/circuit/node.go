package circuit

import (
	"github.com/pathwork/circuit/pkg/circuit/config"
)

// Signal is the comparable token that labels an edge. A node's Call returns
// the signal for the edge to follow next; the engine never inspects a signal
// beyond equality.
type Signal string

// Builtin signals for binary branching. Circuits are free to use any other
// Signal value as an edge key.
const (
	// Right is the forward/success direction.
	Right Signal = "right"

	// Left is the failure direction.
	Left Signal = "left"
)

// Node is the unit a circuit dispatches. Given the incoming signal and the
// current state, a node returns the outgoing signal and the (possibly
// replaced) state.
//
// The state parameter is passed by value. Nodes should modify and return
// a new state value, not rely on pointer mutation. A well-behaved node
// returns state of the same shape it received.
//
// Node identity inside a circuit is by Ref (arena handle), never by name;
// names are debug metadata only.
type Node[S any] interface {
	Call(ctx Context, sig Signal, state S) (Signal, S, error)
}

// TaskFunc adapts a plain function to the Node interface.
//
// Example:
//
//	validate := circuit.TaskFunc[Order](func(ctx circuit.Context, sig circuit.Signal, o Order) (circuit.Signal, Order, error) {
//	    if o.Total <= 0 {
//	        return circuit.Left, o, nil
//	    }
//	    return circuit.Right, o, nil
//	})
type TaskFunc[S any] func(ctx Context, sig Signal, state S) (Signal, S, error)

// Call implements Node by invoking the function.
func (f TaskFunc[S]) Call(ctx Context, sig Signal, state S) (Signal, S, error) {
	return f(ctx, sig, state)
}

// StartEvent is the implicit entry node of every built circuit.
// It always emits Right and never alters state.
type StartEvent[S any] struct{}

// Call implements Node. The start event is a pass-through that emits the
// forward signal.
func (StartEvent[S]) Call(_ Context, _ Signal, state S) (Signal, S, error) {
	return Right, state, nil
}

// EndEvent is a terminal node. Reaching one halts execution: the engine
// dispatches it once and returns its result as the circuit's result.
//
// Each end carries its own distinct signal (derived from its name), so the
// signal returned from Run identifies which end the circuit halted on:
//
//	sig, order, err := activity.Run(ctx, order)
//	if sig == success.Signal() { ... }
type EndEvent[S any] struct {
	name   string
	signal Signal
	attrs  config.Config
}

// NewEnd creates a terminal node with the given name and classification
// attrs (conventionally a "role" key, e.g. "success" or "failure").
func NewEnd[S any](name string, attrs map[string]any) *EndEvent[S] {
	return &EndEvent[S]{
		name:   name,
		signal: Signal("end." + name),
		attrs:  config.New(attrs),
	}
}

// Call implements Node. An end event ignores the incoming signal and emits
// its own signal, indicating there is no further node.
func (e *EndEvent[S]) Call(_ Context, _ Signal, state S) (Signal, S, error) {
	return e.signal, state, nil
}

// Name returns the end's symbolic name.
func (e *EndEvent[S]) Name() string { return e.name }

// Signal returns the signal this end emits when reached.
func (e *EndEvent[S]) Signal() Signal { return e.signal }

// Attrs returns the end's classification attrs.
func (e *EndEvent[S]) Attrs() config.Config { return e.attrs }
