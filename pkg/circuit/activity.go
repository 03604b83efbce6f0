package circuit

import (
	"github.com/pathwork/circuit/pkg/circuit/config"
)

// Activity is a named circuit plus its events registry: a mapping from
// symbolic id (e.g. "start", "success") to the node ref it addresses.
//
// An Activity exclusively owns its circuit and registry; they are never
// aliased into another Activity except through Rewrite, which copies the
// table first. Well-behaved callers treat a built Activity as immutable.
type Activity[S any] struct {
	name    string
	circuit *Circuit[S]
	events  map[string]Ref
}

// Name returns the activity's name.
func (a *Activity[S]) Name() string { return a.name }

// Circuit returns the activity's transition table.
func (a *Activity[S]) Circuit() *Circuit[S] { return a.circuit }

// Event resolves a registered id to its node ref.
func (a *Activity[S]) Event(id string) (Ref, bool) {
	ref, ok := a.events[id]
	return ref, ok
}

// Events returns a copy of the events registry.
func (a *Activity[S]) Events() map[string]Ref {
	events := make(map[string]Ref, len(a.events))
	for id, ref := range a.events {
		events[id] = ref
	}
	return events
}

// Start returns the ref of the activity's start node.
func (a *Activity[S]) Start() Ref {
	return a.events[StartID]
}

// Run executes the activity from its start node.
// See Circuit.Run for the execution contract.
func (a *Activity[S]) Run(ctx Context, state S, opts ...RunOption[S]) (Signal, S, error) {
	return a.circuit.Run(ctx, a.Start(), state, opts...)
}

// Output describes one terminal end of an activity.
type Output[S any] struct {
	// Ref addresses the end node in the activity's circuit.
	Ref Ref
	// End is the terminal node itself.
	End *EndEvent[S]
	// Role is the declared role attr ("" if undeclared).
	Role string
	// Attrs holds the full classification attrs.
	Attrs config.Config
}

// Outputs returns the activity's terminal ends with their declared role
// attrs, in terminal-set order, each exactly once. Callers assembling a
// larger composite from sub-activities use this to wire an end's role to
// the enclosing graph.
//
// Terminals that are not EndEvents (possible after hand wiring through
// Rewrite) are skipped.
func (a *Activity[S]) Outputs() []Output[S] {
	_, terminals, _ := a.circuit.Wiring()

	outputs := make([]Output[S], 0, len(terminals))
	for _, ref := range terminals {
		end, ok := a.circuit.Node(ref).(*EndEvent[S])
		if !ok {
			continue
		}
		outputs = append(outputs, Output[S]{
			Ref:   ref,
			End:   end,
			Role:  end.Attrs().String("role", ""),
			Attrs: end.Attrs(),
		})
	}
	return outputs
}
