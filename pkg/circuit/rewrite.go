package circuit

// Rewrite produces a new Activity from an existing one plus a run of wiring
// instructions, without mutating the source. The source's transition table
// is deep-copied before the edit function sees it: every node's inner signal
// map, the terminal sequence, the debug names, and per-edge attrs are
// duplicated in full, so edits to the new activity never corrupt the old one
// and vice versa. The events registry is copied the same way.
//
// The edit function receives a Builder seeded with the copy; all builder
// instructions (Attach, InsertBefore, Connect, End) apply to the new table
// only. Referencing an id absent from the source's registry is a caller
// error surfaced by Build, exactly as for a from-scratch build.
//
// Merging two graphs is a Rewrite of one that attaches the pieces of the
// other:
//
//	merged, err := circuit.Rewrite(base, "with-audit", func(b *circuit.Builder[Order]) {
//	    b.InsertBefore("success", "audit", auditNode, circuit.Edge{}, nil)
//	})
func Rewrite[S any](src *Activity[S], name string, edit func(*Builder[S])) (*Activity[S], error) {
	if src == nil {
		panic("circuit: rewrite source cannot be nil")
	}
	if name == "" {
		name = src.name
	}

	circ := src.circuit.copyCircuit(name)

	events := make(map[string]Ref, len(src.events))
	for id, ref := range src.events {
		events[id] = ref
	}

	b := &Builder[S]{
		circ:   circ,
		events: events,
		start:  events[StartID],
	}

	if edit != nil {
		edit(b)
	}

	return b.Build()
}
