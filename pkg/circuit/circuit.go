package circuit

import (
	"github.com/pathwork/circuit/pkg/circuit/config"
)

// Ref is a stable handle addressing a node inside a circuit's arena.
// Refs are only meaningful for the circuit (or rewritten copies of it)
// that issued them.
type Ref int

// noRef marks an unresolved reference.
const noRef Ref = -1

// wire is a single outgoing edge: target plus declarative edge attrs.
// Attrs never influence routing; they exist for rewiring predicates
// (InsertBefore) and diagnostics.
type wire struct {
	to    Ref
	attrs config.Config
}

// Circuit is the transition table: an arena of nodes addressed by Ref,
// outgoing edges keyed by signal, the ordered terminal set, and a debug-name
// table.
//
// A Circuit is immutable once published by Build(). It is safe for concurrent
// Run() calls. The only sanctioned way to change one is Rewrite, which
// deep-copies the table before applying edits.
type Circuit[S any] struct {
	name      string
	nodes     []Node[S]
	edges     map[Ref]map[Signal]wire
	terminals []Ref
	names     map[Ref]string
}

func newCircuit[S any](name string) *Circuit[S] {
	return &Circuit[S]{
		name:  name,
		edges: make(map[Ref]map[Signal]wire),
		names: make(map[Ref]string),
	}
}

// Name returns the circuit's name, used in error messages and logs.
func (c *Circuit[S]) Name() string { return c.name }

// Len returns the number of nodes in the arena.
func (c *Circuit[S]) Len() int { return len(c.nodes) }

// Node returns the node behind a ref, or nil for an invalid ref.
func (c *Circuit[S]) Node(ref Ref) Node[S] {
	if !c.has(ref) {
		return nil
	}
	return c.nodes[ref]
}

// NodeName returns the debug name for a ref, or "?" if none was recorded.
// Names are purely informational and never consulted for control flow.
func (c *Circuit[S]) NodeName(ref Ref) string {
	if name, ok := c.names[ref]; ok {
		return name
	}
	return "?"
}

// IsTerminal reports whether ref is a member of the terminal set.
// The engine checks this before any edge lookup, so a terminal node
// need not have outgoing wiring.
func (c *Circuit[S]) IsTerminal(ref Ref) bool {
	for _, t := range c.terminals {
		if t == ref {
			return true
		}
	}
	return false
}

// Lookup resolves the next node for (ref, sig).
//
// Absence is split into two cases for diagnostics: a ref with no entry in
// the table at all yields an IllegalInputError, a present ref without the
// signal wired yields an IllegalSignalError. There are no default edges.
func (c *Circuit[S]) Lookup(ref Ref, sig Signal) (Ref, error) {
	out, ok := c.edges[ref]
	if !ok {
		return noRef, &IllegalInputError{Circuit: c.name, Node: c.NodeName(ref)}
	}
	w, ok := out[sig]
	if !ok {
		return noRef, &IllegalSignalError{Circuit: c.name, Node: c.NodeName(ref), Signal: sig}
	}
	return w.to, nil
}

// Wiring returns the external representation of the table for introspection
// and testing: the edge map, the terminal sequence, and the debug-name table.
// All three are copies; mutating them does not affect the circuit.
func (c *Circuit[S]) Wiring() (map[Ref]map[Signal]Ref, []Ref, map[Ref]string) {
	edges := make(map[Ref]map[Signal]Ref, len(c.edges))
	for from, out := range c.edges {
		m := make(map[Signal]Ref, len(out))
		for sig, w := range out {
			m[sig] = w.to
		}
		edges[from] = m
	}
	terminals := make([]Ref, len(c.terminals))
	copy(terminals, c.terminals)
	names := make(map[Ref]string, len(c.names))
	for ref, name := range c.names {
		names[ref] = name
	}
	return edges, terminals, names
}

// Refs returns all node refs in arena order.
func (c *Circuit[S]) Refs() []Ref {
	refs := make([]Ref, len(c.nodes))
	for i := range c.nodes {
		refs[i] = Ref(i)
	}
	return refs
}

// Successors returns the targets of ref's outgoing edges.
// The order is not guaranteed.
func (c *Circuit[S]) Successors(ref Ref) []Ref {
	out, ok := c.edges[ref]
	if !ok {
		return nil
	}
	targets := make([]Ref, 0, len(out))
	for _, w := range out {
		targets = append(targets, w.to)
	}
	return targets
}

// EdgeAttrs returns the attrs declared on the (ref, sig) edge.
// The second return is false if no such edge exists.
func (c *Circuit[S]) EdgeAttrs(ref Ref, sig Signal) (config.Config, bool) {
	w, ok := c.edges[ref][sig]
	if !ok {
		return config.Config{}, false
	}
	return w.attrs, true
}

// copyCircuit deep-copies the table. Every node's inner signal map, the
// terminal sequence, the name table, and per-edge attrs are independent
// copies; node values themselves are shared, since nodes are immutable
// after construction. Copying the outer map alone would let edits to the
// copy corrupt the original.
func (c *Circuit[S]) copyCircuit(name string) *Circuit[S] {
	nodes := make([]Node[S], len(c.nodes))
	copy(nodes, c.nodes)

	edges := make(map[Ref]map[Signal]wire, len(c.edges))
	for from, out := range c.edges {
		m := make(map[Signal]wire, len(out))
		for sig, w := range out {
			m[sig] = wire{to: w.to, attrs: w.attrs.Clone()}
		}
		edges[from] = m
	}

	terminals := make([]Ref, len(c.terminals))
	copy(terminals, c.terminals)

	names := make(map[Ref]string, len(c.names))
	for ref, n := range c.names {
		names[ref] = n
	}

	return &Circuit[S]{
		name:      name,
		nodes:     nodes,
		edges:     edges,
		terminals: terminals,
		names:     names,
	}
}

// has reports whether ref addresses a node in the arena.
func (c *Circuit[S]) has(ref Ref) bool {
	return ref >= 0 && int(ref) < len(c.nodes)
}

// add appends a node to the arena and records its debug name.
func (c *Circuit[S]) add(node Node[S], name string) Ref {
	ref := Ref(len(c.nodes))
	c.nodes = append(c.nodes, node)
	c.names[ref] = name
	return ref
}

// connect adds or overwrites the (from, sig) edge.
func (c *Circuit[S]) connect(from Ref, sig Signal, to Ref, attrs config.Config) {
	out, ok := c.edges[from]
	if !ok {
		out = make(map[Signal]wire)
		c.edges[from] = out
	}
	out[sig] = wire{to: to, attrs: attrs}
}

// markTerminal appends ref to the terminal sequence if not already present.
func (c *Circuit[S]) markTerminal(ref Ref) {
	if c.IsTerminal(ref) {
		return
	}
	c.terminals = append(c.terminals, ref)
}

// rewireIncoming repoints every edge into target whose attrs match pred at
// the replacement ref. All matches are rewired, not just the first, even
// across unrelated source nodes. A nil pred matches every edge.
// Returns the number of edges rewired.
func (c *Circuit[S]) rewireIncoming(target Ref, pred func(config.Config) bool, to Ref) int {
	n := 0
	for _, out := range c.edges {
		for sig, w := range out {
			if w.to != target {
				continue
			}
			if pred != nil && !pred(w.attrs) {
				continue
			}
			out[sig] = wire{to: to, attrs: w.attrs}
			n++
		}
	}
	return n
}
