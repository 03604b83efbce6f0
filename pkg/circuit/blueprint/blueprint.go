// Package blueprint loads declarative circuit definitions and compiles them
// through the wiring Builder.
//
// A blueprint names tasks out of a registry catalog, so the same definition
// can be compiled against different task implementations:
//
//	name: payment
//	tasks:
//	  - id: validate
//	    edge: {signal: right, attrs: {type: railway}}
//	  - id: charge
//	    source: validate
//	ends:
//	  - id: success
//	    source: charge
//	    role: success
//
// Only attach-style wiring is expressible declaratively; InsertBefore takes
// a predicate over edge attrs and stays a programmatic Rewrite concern.
package blueprint

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/pathwork/circuit/pkg/circuit/config"
)

// Definition is a parsed circuit blueprint.
type Definition struct {
	// Name is the circuit name; required.
	Name string `mapstructure:"name"`
	// Tasks are attach instructions, applied in order.
	Tasks []TaskDef `mapstructure:"tasks"`
	// Ends are terminal attach instructions, applied after the tasks.
	Ends []EndDef `mapstructure:"ends"`
}

// TaskDef attaches one task node.
type TaskDef struct {
	// ID registers the node in the events registry; required.
	ID string `mapstructure:"id"`
	// Task is the catalog key; defaults to ID.
	Task string `mapstructure:"task"`
	// Source is the id of the edge's source node; defaults to start.
	Source string `mapstructure:"source"`
	// Edge declares the incoming edge.
	Edge EdgeDef `mapstructure:"edge"`
}

// EndDef attaches one terminal node.
type EndDef struct {
	// ID registers the end in the events registry; required.
	ID string `mapstructure:"id"`
	// Source is the id of the edge's source node; defaults to start.
	Source string `mapstructure:"source"`
	// Role classifies the end (e.g. "success", "failure").
	Role string `mapstructure:"role"`
	// Attrs holds further classification attrs.
	Attrs map[string]any `mapstructure:"attrs"`
	// Edge declares the incoming edge.
	Edge EdgeDef `mapstructure:"edge"`
}

// EdgeDef declares an edge's signal and attrs.
type EdgeDef struct {
	// Signal keys the edge; defaults to right.
	Signal string `mapstructure:"signal"`
	// Attrs are declarative edge attrs (e.g. type: railway).
	Attrs map[string]any `mapstructure:"attrs"`
}

// Parse reads a YAML blueprint.
func Parse(data []byte) (Definition, error) {
	cfg, err := config.FromYAML(data)
	if err != nil {
		return Definition{}, fmt.Errorf("blueprint: %w", err)
	}
	return decode(cfg)
}

// Load reads a blueprint from a YAML or JSON file.
func Load(path string) (Definition, error) {
	cfg, err := config.FromFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("blueprint: %w", err)
	}
	return decode(cfg)
}

// decode maps the raw parsed document onto Definition.
// Unknown keys are rejected so typos fail loudly.
func decode(cfg config.Config) (Definition, error) {
	var def Definition
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &def,
		ErrorUnused: true,
	})
	if err != nil {
		return Definition{}, fmt.Errorf("blueprint: %w", err)
	}
	if err := dec.Decode(cfg.Raw()); err != nil {
		return Definition{}, fmt.Errorf("blueprint: decode definition: %w", err)
	}
	if def.Name == "" {
		return Definition{}, fmt.Errorf("blueprint: definition has no name")
	}
	return def, nil
}
