package blueprint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pathwork/circuit/pkg/circuit"
	"github.com/pathwork/circuit/pkg/circuit/registry"
)

// Compile builds an Activity from a definition, resolving task names against
// the catalog. Instructions are applied in definition order: tasks first (in
// sequence), then ends, so a task can name any earlier task as its source.
//
// Malformed definitions (missing/duplicate/whitespace ids, unregistered
// tasks) are reported as joined errors, never panics - blueprints are data,
// not code.
func Compile[S any](def Definition, catalog *registry.Registry[string, circuit.Node[S]]) (*circuit.Activity[S], error) {
	if catalog == nil {
		return nil, fmt.Errorf("blueprint %s: catalog cannot be nil", def.Name)
	}
	if errs := validate(def); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	b := circuit.NewBuilder[S](def.Name)

	for _, task := range def.Tasks {
		key := task.Task
		if key == "" {
			key = task.ID
		}
		node, ok := catalog.Get(key)
		if !ok {
			return nil, fmt.Errorf("blueprint %s: task %q not registered (node %q)", def.Name, key, task.ID)
		}
		b.Attach(task.ID, node, edge(task.Edge), from(task.Source))
	}

	for _, end := range def.Ends {
		attrs := make(map[string]any, len(end.Attrs)+1)
		for k, v := range end.Attrs {
			attrs[k] = v
		}
		if end.Role != "" {
			attrs["role"] = end.Role
		}
		b.End(end.ID, attrs, edge(end.Edge), from(end.Source))
	}

	return b.Build()
}

// edge converts an EdgeDef to a builder Edge.
func edge(def EdgeDef) circuit.Edge {
	return circuit.Edge{
		Signal: circuit.Signal(def.Signal),
		Attrs:  def.Attrs,
	}
}

// from defaults an empty source to the implicit start node.
func from(source string) circuit.WireOption {
	if source == "" {
		source = circuit.StartID
	}
	return circuit.From(source)
}

// validate checks ids before they reach the builder, which treats id misuse
// as programmer error and panics.
func validate(def Definition) []error {
	var errs []error
	seen := map[string]bool{circuit.StartID: true}

	check := func(kind, id string) {
		switch {
		case id == "":
			errs = append(errs, fmt.Errorf("blueprint %s: %s with empty id", def.Name, kind))
		case strings.ContainsAny(id, " \t\n\r"):
			errs = append(errs, fmt.Errorf("blueprint %s: %s id %q contains whitespace", def.Name, kind, id))
		case seen[id]:
			errs = append(errs, fmt.Errorf("blueprint %s: duplicate id %q", def.Name, id))
		default:
			seen[id] = true
		}
	}

	for _, task := range def.Tasks {
		check("task", task.ID)
	}
	for _, end := range def.Ends {
		check("end", end.ID)
	}
	return errs
}
