package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCapture_RecordsSteps records node name, incoming, and outgoing signal
// for every dispatch.
func TestCapture_RecordsSteps(t *testing.T) {
	act := railwayActivity(t, Right)

	capture := NewCapture[Order]()
	_, _, err := act.Run(testCtx(), Order{}, WithRunner[Order](capture.Runner()))
	require.NoError(t, err)

	assert.Equal(t, []Step{
		{Node: "start", In: "", Out: Right},
		{Node: "validate", In: Right, Out: Right},
		{Node: "charge", In: Right, Out: Right},
		{Node: "success", In: Right, Out: "end.success"},
	}, capture.Steps())
}

// TestCapture_Reset clears recorded steps for reuse.
func TestCapture_Reset(t *testing.T) {
	act := linearActivity(t)

	capture := NewCapture[Order]()
	_, _, err := act.Run(testCtx(), Order{}, WithRunner[Order](capture.Runner()))
	require.NoError(t, err)
	require.NotEmpty(t, capture.Steps())

	capture.Reset()
	assert.Empty(t, capture.Steps())
}

// TestCapture_DoesNotAlterRouting: captured runs produce the same result as
// plain runs.
func TestCapture_DoesNotAlterRouting(t *testing.T) {
	act := railwayActivity(t, Left)

	plainSig, plainResult, err := act.Run(testCtx(), Order{})
	require.NoError(t, err)

	capture := NewCapture[Order]()
	capturedSig, capturedResult, err := act.Run(testCtx(), Order{}, WithRunner[Order](capture.Runner()))
	require.NoError(t, err)

	assert.Equal(t, plainSig, capturedSig)
	assert.Equal(t, plainResult, capturedResult)
}
