package circuit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Context provides execution context to nodes.
// It extends context.Context with circuit-specific services and metadata.
//
// Context is immutable after creation. The engine creates derived contexts
// for each node with the current node name and an enriched logger.
type Context interface {
	context.Context

	// Logger returns the configured logger, enriched with run and node
	// context. Never returns nil - defaults to slog.Default() if not
	// configured.
	Logger() *slog.Logger

	// RunID returns the unique identifier for this execution run.
	// Auto-generated if not configured.
	RunID() string

	// NodeName returns the debug name of the node being dispatched.
	// Empty string before execution starts.
	NodeName() string
}

// executionContext is the internal implementation of Context.
type executionContext struct {
	context.Context

	logger   *slog.Logger
	runID    string
	nodeName string
}

// Logger returns the configured logger.
func (c *executionContext) Logger() *slog.Logger {
	return c.logger
}

// RunID returns the run identifier.
func (c *executionContext) RunID() string {
	return c.runID
}

// NodeName returns the current node's debug name.
func (c *executionContext) NodeName() string {
	return c.nodeName
}

// ContextOption configures a Context.
type ContextOption func(*executionContext)

// WithLogger sets the logger for the context.
// The logger is enriched with run_id and node fields during execution.
func WithLogger(logger *slog.Logger) ContextOption {
	return func(c *executionContext) {
		c.logger = logger
	}
}

// WithContextRunID sets the run identifier for the context.
// If not set, a UUID is auto-generated.
func WithContextRunID(id string) ContextOption {
	return func(c *executionContext) {
		c.runID = id
	}
}

// NewContext creates an execution context from a standard context.
//
// Example:
//
//	ctx := circuit.NewContext(context.Background(),
//	    circuit.WithLogger(myLogger),
//	    circuit.WithContextRunID("run-123"))
func NewContext(ctx context.Context, opts ...ContextOption) Context {
	ec := &executionContext{
		Context: ctx,
		logger:  slog.Default(),
		runID:   uuid.New().String(),
	}

	for _, opt := range opts {
		opt(ec)
	}

	return ec
}

// withNode returns a derived context for dispatching the named node.
func (c *executionContext) withNode(name string) *executionContext {
	return &executionContext{
		Context:  c.Context,
		logger:   c.logger.With("run_id", c.runID, "node", name),
		runID:    c.runID,
		nodeName: name,
	}
}
