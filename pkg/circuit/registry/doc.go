// Package registry provides a generic thread-safe key/value catalog.
//
// Its main consumer is the blueprint compiler, which resolves task names
// from declarative circuit definitions to registered Node implementations.
package registry
