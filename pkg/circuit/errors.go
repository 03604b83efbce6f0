package circuit

import (
	"errors"
	"fmt"
)

// Sentinel errors for execution.
var (
	// ErrIllegalInput indicates the current node is not a key of the
	// transition table at all (disconnected graph or wrong start node).
	ErrIllegalInput = errors.New("node not wired into circuit")

	// ErrIllegalSignal indicates a node emitted a signal with no
	// corresponding wired edge.
	ErrIllegalSignal = errors.New("signal not wired")

	// ErrNilContext indicates Run() was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")

	// ErrMaxSteps indicates the execution loop exceeded the opt-in step limit.
	ErrMaxSteps = errors.New("exceeded maximum steps")
)

// Sentinel errors for building and rewriting.
var (
	// ErrUnknownReference indicates a wiring instruction referenced a node id
	// that is not present in the events registry.
	ErrUnknownReference = errors.New("unknown node reference")
)

// IllegalInputError is returned when execution reaches a node that has no
// entry in the transition table. This is always a wiring bug: every
// non-terminal node must have explicit routing.
type IllegalInputError struct {
	// Circuit is the name of the circuit being executed.
	Circuit string
	// Node is the debug name of the offending node.
	Node string
}

// Error implements the error interface.
func (e *IllegalInputError) Error() string {
	return fmt.Sprintf("circuit %s: node %s is not wired into the circuit", e.Circuit, e.Node)
}

// Unwrap returns ErrIllegalInput for errors.Is support.
func (e *IllegalInputError) Unwrap() error {
	return ErrIllegalInput
}

// IllegalSignalError is returned when a node emits a signal that has no wired
// edge. Either the wiring is incomplete or the node returned an unexpected
// signal.
type IllegalSignalError struct {
	// Circuit is the name of the circuit being executed.
	Circuit string
	// Node is the debug name of the node that emitted the signal.
	Node string
	// Signal is the unwired signal.
	Signal Signal
}

// Error implements the error interface.
func (e *IllegalSignalError) Error() string {
	return fmt.Sprintf("circuit %s: node %s emitted unwired signal %q", e.Circuit, e.Node, string(e.Signal))
}

// Unwrap returns ErrIllegalSignal for errors.Is support.
func (e *IllegalSignalError) Unwrap() error {
	return ErrIllegalSignal
}

// UnknownReferenceError is returned from Build() when an instruction
// referenced a node id not registered in the events registry.
type UnknownReferenceError struct {
	// Circuit is the name of the circuit being built.
	Circuit string
	// ID is the unresolved node id.
	ID string
}

// Error implements the error interface.
func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("circuit %s: no node registered under id %q", e.Circuit, e.ID)
}

// Unwrap returns ErrUnknownReference for errors.Is support.
func (e *UnknownReferenceError) Unwrap() error {
	return ErrUnknownReference
}

// NodeError wraps an error returned by a node's Call with node context.
type NodeError struct {
	// Circuit is the name of the circuit being executed.
	Circuit string
	// Node is the debug name of the node that failed.
	Node string
	// Err is the underlying error from the node.
	Err error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	return fmt.Sprintf("circuit %s: node %s: %v", e.Circuit, e.Node, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *NodeError) Unwrap() error {
	return e.Err
}

// PanicError captures panic information from node dispatch.
type PanicError struct {
	// Node is the debug name of the node that panicked.
	Node string
	// Value is the value passed to panic().
	Value any
	// Stack is the full stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("node %s panicked: %v", e.Node, e.Value)
}

// CancellationError is returned when the context is cancelled between steps.
// Dispatch itself is atomic from the engine's perspective; cancellation is
// only observed at step boundaries.
type CancellationError struct {
	// Circuit is the name of the circuit being executed.
	Circuit string
	// Node is the node that was about to be dispatched.
	Node string
	// Cause is the underlying cancellation cause.
	Cause error
}

// Error implements the error interface.
func (e *CancellationError) Error() string {
	return fmt.Sprintf("circuit %s: cancelled before node %s: %v", e.Circuit, e.Node, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *CancellationError) Unwrap() error {
	return e.Cause
}

// MaxStepsError is returned when the opt-in step limit is exceeded.
// Without WithMaxSteps a cyclic circuit with no reachable terminal runs
// forever; that is a malformed graph, a caller error.
type MaxStepsError struct {
	// Max is the configured step limit.
	Max int
	// Node is the node that would have been dispatched next.
	Node string
}

// Error implements the error interface.
func (e *MaxStepsError) Error() string {
	return fmt.Sprintf("exceeded maximum steps (%d) at node %s", e.Max, e.Node)
}

// Unwrap returns ErrMaxSteps for errors.Is support.
func (e *MaxStepsError) Unwrap() error {
	return ErrMaxSteps
}
