// Package journal provides persistent run journals: an append-only record of
// every step a circuit executed, for audit and post-mortem diagnosis.
package journal

import (
	"errors"
	"fmt"
	"time"
)

// Entry records one executed step of a run.
type Entry struct {
	// RunID identifies the run this step belongs to.
	RunID string
	// Seq is the 1-based position of the step within the run.
	Seq int
	// Node is the debug name of the dispatched node.
	Node string
	// In is the signal the node was called with.
	In string
	// Out is the signal the node returned.
	Out string
	// At is the time the step completed.
	At time.Time
}

// Store persists run journals.
// Implementations must be safe for concurrent use.
type Store interface {
	// Append adds an entry to its run's journal.
	Append(entry Entry) error

	// List returns all entries for a run, ordered by sequence.
	// Returns an empty slice (not an error) if the run has no entries.
	List(runID string) ([]Entry, error)

	// DeleteRun removes all entries for a run.
	// Returns nil if the run has no entries.
	DeleteRun(runID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for journal operations.
var (
	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("journal store closed")
)

// AppendError wraps a failed append with the node being recorded.
// The engine returns one only when journal failures are configured fatal.
type AppendError struct {
	// Node is the node whose step failed to record.
	Node string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *AppendError) Error() string {
	return fmt.Sprintf("journal append at node %s: %v", e.Node, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AppendError) Unwrap() error {
	return e.Err
}
