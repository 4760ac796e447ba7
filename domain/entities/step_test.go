package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation_Kinds(t *testing.T) {
	tests := []struct {
		op          Operation
		action      bool
		needsTarget bool
	}{
		{OpNavigate, true, false},
		{OpFill, true, true},
		{OpClick, true, true},
		{OpWaitVisible, false, true},
		{OpAssertVisible, false, true},
		{OpAssertURL, false, false},
		{OpAssertText, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			assert.True(t, tt.op.Valid())
			assert.Equal(t, tt.action, tt.op.IsAction())
			assert.Equal(t, tt.needsTarget, tt.op.NeedsTarget())
		})
	}

	assert.False(t, Operation("hover").Valid())
}

func TestOutcome_IsTerminal(t *testing.T) {
	assert.False(t, OutcomePending.IsTerminal())
	assert.False(t, OutcomeRunning.IsTerminal())
	assert.True(t, OutcomePassed.IsTerminal())
	assert.True(t, OutcomeFailed.IsTerminal())
	assert.True(t, OutcomeCancelled.IsTerminal())
}
