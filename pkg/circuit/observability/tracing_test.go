package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest creates a test tracer provider with an in-memory span recorder.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	// Update the package-level tracer to use the test provider.
	tracer = otel.Tracer("circuit")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func TestStartRunSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()

	t.Run("creates span with correct name and attributes", func(t *testing.T) {
		ctx := context.Background()
		_, span := sm.StartRunSpan(ctx, "payment", "run-123")
		require.NotNil(t, span)

		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		s := spans[0]
		assert.Equal(t, "circuit.run", s.Name)

		var circuitName, runID string
		for _, attr := range s.Attributes {
			switch attr.Key {
			case "circuit.name":
				circuitName = attr.Value.AsString()
			case "run.id":
				runID = attr.Value.AsString()
			}
		}
		assert.Equal(t, "payment", circuitName)
		assert.Equal(t, "run-123", runID)
	})

	t.Run("returns context carrying the span", func(t *testing.T) {
		exporter.Reset()

		ctx := context.Background()
		newCtx, span := sm.StartRunSpan(ctx, "payment", "run-456")

		assert.NotEqual(t, ctx, newCtx)

		span.End()
		require.Len(t, exporter.GetSpans(), 1)
	})
}

func TestStartNodeSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()

	t.Run("creates span with node name suffix", func(t *testing.T) {
		_, span := sm.StartNodeSpan(context.Background(), "charge")
		require.NotNil(t, span)

		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		s := spans[0]
		assert.Equal(t, "circuit.node.charge", s.Name)

		var node string
		for _, attr := range s.Attributes {
			if attr.Key == "node" {
				node = attr.Value.AsString()
			}
		}
		assert.Equal(t, "charge", node)
	})

	t.Run("node spans are children of the run span", func(t *testing.T) {
		exporter.Reset()

		ctx := context.Background()
		ctx, runSpan := sm.StartRunSpan(ctx, "payment", "run-1")

		_, nodeSpan := sm.StartNodeSpan(ctx, "charge")
		nodeSpan.End()
		runSpan.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 2)

		var nodeSpanData *tracetest.SpanStub
		for i := range spans {
			if spans[i].Name == "circuit.node.charge" {
				nodeSpanData = &spans[i]
				break
			}
		}
		require.NotNil(t, nodeSpanData)
		assert.True(t, nodeSpanData.Parent.IsValid())
	})
}

func TestEndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()

	t.Run("sets OK status for nil error", func(t *testing.T) {
		_, span := sm.StartRunSpan(context.Background(), "payment", "run-1")

		sm.EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
		assert.Equal(t, "", spans[0].Status.Description)
	})

	t.Run("sets Error status and records the error", func(t *testing.T) {
		exporter.Reset()

		_, span := sm.StartRunSpan(context.Background(), "payment", "run-2")

		sm.EndSpanWithError(span, errors.New("something went wrong"))

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		s := spans[0]
		assert.Equal(t, codes.Error, s.Status.Code)
		assert.Equal(t, "something went wrong", s.Status.Description)

		require.NotEmpty(t, s.Events)
		found := false
		for _, event := range s.Events {
			if event.Name == "exception" {
				found = true
			}
		}
		assert.True(t, found, "Expected exception event")
	})

	t.Run("nil span does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(nil, nil)
		})
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(nil, errors.New("boom"))
		})
	})
}
