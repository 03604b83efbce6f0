package circuit

// Step records one dispatch observed by a Capture runner.
type Step struct {
	// Node is the dispatched node's debug name.
	Node string
	// In is the signal the node was called with.
	In Signal
	// Out is the signal the node returned.
	Out Signal
}

// Capture is a Runner wrapper that records every dispatch. It exists for
// tests and diagnostics; it never alters routing.
//
// Capture is not safe for concurrent runs - use one per Run call.
//
// Example:
//
//	cap := circuit.NewCapture[Order]()
//	sig, order, err := act.Run(ctx, order, circuit.WithRunner(cap.Runner()))
//	for _, step := range cap.Steps() { ... }
type Capture[S any] struct {
	steps []Step
}

// NewCapture creates an empty capture.
func NewCapture[S any]() *Capture[S] {
	return &Capture[S]{}
}

// Runner returns a Runner that dispatches directly and records each step.
func (c *Capture[S]) Runner() Runner[S] {
	return func(ctx Context, node Node[S], sig Signal, state S) (Signal, S, error) {
		out, next, err := node.Call(ctx, sig, state)
		c.steps = append(c.steps, Step{Node: ctx.NodeName(), In: sig, Out: out})
		return out, next, err
	}
}

// Steps returns the recorded dispatches in execution order.
func (c *Capture[S]) Steps() []Step {
	return c.steps
}

// Reset clears the recorded steps so the capture can be reused.
func (c *Capture[S]) Reset() {
	c.steps = nil
}
