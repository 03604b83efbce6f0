package circuit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test state used across tests.

// Order is the state flowing through test circuits.
type Order struct {
	Total   int
	Charged bool
	Trail   []string
}

// Helper node constructors

// stamp returns a task that records its name on the trail and emits sig.
func stamp(name string, sig Signal) TaskFunc[Order] {
	return func(_ Context, _ Signal, o Order) (Signal, Order, error) {
		o.Trail = append(o.Trail, name)
		return sig, o, nil
	}
}

// echo returns a task that passes the incoming signal through unchanged.
func echo(name string) TaskFunc[Order] {
	return func(_ Context, sig Signal, o Order) (Signal, Order, error) {
		o.Trail = append(o.Trail, name)
		return sig, o, nil
	}
}

// failing returns a task that fails with the given error.
func failing(err error) TaskFunc[Order] {
	return func(_ Context, _ Signal, o Order) (Signal, Order, error) {
		return "", o, err
	}
}

// panicking returns a task that panics with the given value.
func panicking(value any) TaskFunc[Order] {
	return func(_ Context, _ Signal, o Order) (Signal, Order, error) {
		panic(value)
	}
}

// testCtx creates a simple test context.
func testCtx() Context {
	return NewContext(context.Background())
}

// linearActivity wires start -> a -> b -> success.
func linearActivity(t *testing.T) *Activity[Order] {
	t.Helper()
	act, err := NewBuilder[Order]("linear").
		Attach("a", stamp("a", Right), Edge{}).
		Attach("b", stamp("b", Right), Edge{}, From("a")).
		End("success", map[string]any{"role": "success"}, Edge{}, From("b")).
		Build()
	require.NoError(t, err)
	return act
}

// railwayActivity wires a binary Right/Left branch:
// start -> validate --right--> charge --right--> success
//          validate --left--> failure
func railwayActivity(t *testing.T, validateSig Signal) *Activity[Order] {
	t.Helper()
	validate := stamp("validate", validateSig)
	charge := TaskFunc[Order](func(_ Context, _ Signal, o Order) (Signal, Order, error) {
		o.Charged = true
		o.Trail = append(o.Trail, "charge")
		return Right, o, nil
	})

	act, err := NewBuilder[Order]("railway").
		Attach("validate", validate, Edge{Signal: Right, Attrs: map[string]any{"type": "railway"}}).
		Attach("charge", charge, Edge{Signal: Right, Attrs: map[string]any{"type": "railway"}}, From("validate")).
		End("success", map[string]any{"role": "success"}, Edge{Signal: Right, Attrs: map[string]any{"type": "railway"}}, From("charge")).
		End("failure", map[string]any{"role": "failure"}, Edge{Signal: Left}, From("validate")).
		Build()
	require.NoError(t, err)
	return act
}
