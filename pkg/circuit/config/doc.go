// Package config provides attribute maps for circuit wiring and loaders for
// declarative definitions.
//
// Edge and end attrs inside a circuit are Config values: untyped maps with
// typed, default-returning accessors. The loaders parse YAML or JSON files
// into a Config, used by the blueprint package to read circuit definitions.
package config
