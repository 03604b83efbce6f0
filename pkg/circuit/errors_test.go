package circuit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrorMessages pins the diagnostic content of each typed error.
func TestErrorMessages(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want string
	}{
		{
			"illegal input",
			&IllegalInputError{Circuit: "pay", Node: "charge"},
			"circuit pay: node charge is not wired into the circuit",
		},
		{
			"illegal signal",
			&IllegalSignalError{Circuit: "pay", Node: "charge", Signal: Left},
			`circuit pay: node charge emitted unwired signal "left"`,
		},
		{
			"unknown reference",
			&UnknownReferenceError{Circuit: "pay", ID: "ghost"},
			`circuit pay: no node registered under id "ghost"`,
		},
		{
			"node error",
			&NodeError{Circuit: "pay", Node: "charge", Err: errors.New("boom")},
			"circuit pay: node charge: boom",
		},
		{
			"panic error",
			&PanicError{Node: "charge", Value: "kaput"},
			"node charge panicked: kaput",
		},
		{
			"cancellation",
			&CancellationError{Circuit: "pay", Node: "charge", Cause: errors.New("ctx done")},
			"circuit pay: cancelled before node charge: ctx done",
		},
		{
			"max steps",
			&MaxStepsError{Max: 7, Node: "charge"},
			"exceeded maximum steps (7) at node charge",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

// TestErrorUnwrapping ties typed errors to their sentinels.
func TestErrorUnwrapping(t *testing.T) {
	assert.ErrorIs(t, &IllegalInputError{}, ErrIllegalInput)
	assert.ErrorIs(t, &IllegalSignalError{}, ErrIllegalSignal)
	assert.ErrorIs(t, &UnknownReferenceError{}, ErrUnknownReference)
	assert.ErrorIs(t, &MaxStepsError{}, ErrMaxSteps)

	boom := errors.New("boom")
	assert.ErrorIs(t, &NodeError{Err: boom}, boom)
	assert.ErrorIs(t, &CancellationError{Cause: boom}, boom)
}
