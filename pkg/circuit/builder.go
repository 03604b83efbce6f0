package circuit

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/pathwork/circuit/pkg/circuit/config"
)

// StartID is the events-registry id under which the implicit start node is
// registered by NewBuilder.
const StartID = "start"

// Edge declares an outgoing transition: the signal keying it plus optional
// declarative attrs. Attrs are never consulted for routing; they feed
// InsertBefore predicates and diagnostics.
//
// A zero Signal defaults to Right.
type Edge struct {
	Signal Signal
	Attrs  map[string]any
}

func (e Edge) signal() Signal {
	if e.Signal == "" {
		return Right
	}
	return e.Signal
}

// Builder compiles an ordered sequence of wiring instructions into an
// Activity. Instructions are applied strictly in order: later instructions
// see the effect of earlier ones. Node identity is by Ref; ids are a
// convenience lookup layer resolved to refs at apply time.
//
// Builder is NOT thread-safe and is single-use: after Build() it must be
// discarded.
//
// Example:
//
//	act, err := circuit.NewBuilder[Order]("payment").
//	    Attach("validate", validate, circuit.Edge{}).
//	    Attach("charge", charge, circuit.Edge{}, circuit.From("validate")).
//	    End("success", map[string]any{"role": "success"}, circuit.Edge{}, circuit.From("charge")).
//	    Build()
type Builder[S any] struct {
	circ   *Circuit[S]
	events map[string]Ref
	start  Ref
	errs   []error
}

// NewBuilder creates a builder for a fresh circuit. The implicit start node
// is created once per build, registered under StartID, and returned as part
// of the built Activity - there is no ambient global start.
func NewBuilder[S any](name string) *Builder[S] {
	if name == "" {
		panic("circuit: circuit name cannot be empty")
	}
	circ := newCircuit[S](name)
	start := circ.add(StartEvent[S]{}, StartID)
	return &Builder[S]{
		circ:   circ,
		events: map[string]Ref{StartID: start},
		start:  start,
	}
}

// wireSpec collects per-instruction options.
type wireSpec struct {
	source string
}

// WireOption adjusts a single wiring instruction.
type WireOption func(*wireSpec)

// From addresses the source node of an Attach or End instruction by id.
// Default source is the implicit start node.
func From(id string) WireOption {
	return func(s *wireSpec) {
		s.source = id
	}
}

// Attach adds a new task node with a single outgoing edge from an existing
// source node (default: start) into the new node, and registers the node
// under id in the events registry.
//
// Panics if id is empty, contains whitespace, duplicates a registered id,
// or node is nil. An unknown source id is a caller error surfaced at Build().
func (b *Builder[S]) Attach(id string, node Node[S], edge Edge, opts ...WireOption) *Builder[S] {
	ref := b.register(id, node)

	spec := wireSpec{source: StartID}
	for _, opt := range opts {
		opt(&spec)
	}

	src, ok := b.resolve(spec.source)
	if !ok {
		return b
	}
	b.circ.connect(src, edge.signal(), ref, config.New(edge.Attrs))
	return b
}

// End adds a terminal node reached via the given edge from an existing source
// node. The attrs classify the end (conventionally a "role" key); they are
// what Outputs() reports.
func (b *Builder[S]) End(id string, attrs map[string]any, edge Edge, opts ...WireOption) *Builder[S] {
	ref := b.register(id, NewEnd[S](id, attrs))
	b.circ.markTerminal(ref)

	spec := wireSpec{source: StartID}
	for _, opt := range opts {
		opt(&spec)
	}

	src, ok := b.resolve(spec.source)
	if !ok {
		return b
	}
	b.circ.connect(src, edge.signal(), ref, config.New(edge.Attrs))
	return b
}

// InsertBefore splices a new node in front of an existing target: every edge
// into the target whose attrs match the incoming predicate is rewired to
// point at the new node, then the outgoing edge from the new node to the
// original target is added.
//
// All matching edges are rewired, not just the first, even across unrelated
// source nodes. A nil incoming predicate matches every edge into the target.
func (b *Builder[S]) InsertBefore(targetID, id string, node Node[S], outgoing Edge, incoming func(config.Config) bool) *Builder[S] {
	ref := b.register(id, node)

	target, ok := b.resolve(targetID)
	if !ok {
		return b
	}

	b.circ.rewireIncoming(target, incoming, ref)
	b.circ.connect(ref, outgoing.signal(), target, config.New(outgoing.Attrs))
	return b
}

// Connect adds or overwrites the single edge (source, signal) -> target.
// Both ends are addressed by registered id.
func (b *Builder[S]) Connect(sourceID string, edge Edge, targetID string) *Builder[S] {
	src, ok := b.resolve(sourceID)
	if !ok {
		return b
	}
	dst, ok := b.resolve(targetID)
	if !ok {
		return b
	}
	b.circ.connect(src, edge.signal(), dst, config.New(edge.Attrs))
	return b
}

// Build finalizes the circuit and returns the Activity owning it.
// Accumulated instruction errors (unknown references) are joined and
// returned together; the Activity is nil in that case.
func (b *Builder[S]) Build() (*Activity[S], error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	b.warnUnreachable()

	return &Activity[S]{
		name:    b.circ.name,
		circuit: b.circ,
		events:  b.events,
	}, nil
}

// register validates and adds a node to the arena under id.
func (b *Builder[S]) register(id string, node Node[S]) Ref {
	if id == "" {
		panic("circuit: node id cannot be empty")
	}
	if strings.ContainsAny(id, " \t\n\r") {
		panic("circuit: node id cannot contain whitespace")
	}
	if node == nil {
		panic("circuit: node cannot be nil")
	}
	if _, exists := b.events[id]; exists {
		panic("circuit: duplicate node id: " + id)
	}

	ref := b.circ.add(node, id)
	b.events[id] = ref
	return ref
}

// resolve maps an id to its ref, recording an UnknownReferenceError if the
// id was never registered.
func (b *Builder[S]) resolve(id string) (Ref, bool) {
	ref, ok := b.events[id]
	if !ok {
		b.errs = append(b.errs, &UnknownReferenceError{Circuit: b.circ.name, ID: id})
		return noRef, false
	}
	return ref, true
}

// warnUnreachable logs nodes that no edge path from start can reach.
// Unreachable nodes do not fail the build; they surface as IllegalInput
// at run time if execution somehow lands on them.
func (b *Builder[S]) warnUnreachable() {
	reachable := make(map[Ref]bool)
	queue := []Ref{b.start}
	reachable[b.start] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, w := range b.circ.edges[current] {
			if !reachable[w.to] {
				reachable[w.to] = true
				queue = append(queue, w.to)
			}
		}
	}

	for ref := range b.circ.nodes {
		if !reachable[Ref(ref)] {
			slog.Warn("node is unreachable from start",
				"circuit", b.circ.name,
				"node", b.circ.NodeName(Ref(ref)))
		}
	}
}
