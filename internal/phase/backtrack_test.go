package phase

import (
	"testing"

	"github.com/avelasco/stride/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBacktrackTarget(t *testing.T) {
	tests := []struct {
		current domain.Phase
		reason  domain.BacktrackReason
		want    domain.Phase
		ok      bool
	}{
		{domain.PhaseValidation, domain.BacktrackScopeChange, domain.PhaseDiscovery, true},
		{domain.PhaseValidation, domain.BacktrackNewInsight, domain.PhaseKRDiscovery, true},
		{domain.PhaseKRDiscovery, domain.BacktrackMissedDetail, domain.PhaseRefinement, true},
		{domain.PhaseRefinement, domain.BacktrackNewInsight, domain.PhaseDiscovery, true},
		{domain.PhaseDiscovery, domain.BacktrackScopeChange, domain.PhaseDiscovery, false},
		{domain.PhaseCompleted, domain.BacktrackScopeChange, domain.PhaseCompleted, false},
		{domain.PhaseValidation, domain.BacktrackNone, domain.PhaseValidation, false},
	}
	for _, tt := range tests {
		got, ok := backtrackTarget(tt.current, tt.reason)
		assert.Equal(t, tt.ok, ok, "%s/%s", tt.current, tt.reason)
		assert.Equal(t, tt.want, got, "%s/%s", tt.current, tt.reason)
	}
}

func TestEvaluate_BacktrackResetsStreak(t *testing.T) {
	c := New(DefaultConfig())
	d := c.Evaluate(Input{
		Phase:     domain.PhaseKRDiscovery,
		Message:   "Actually the whole objective should be about a different market",
		Backtrack: domain.BacktrackScopeChange,
		State: domain.SessionState{
			Phase:       domain.PhaseKRDiscovery,
			StreakCount: 4,
		},
	})

	assert.True(t, d.Backtracked)
	assert.Equal(t, domain.PhaseDiscovery, d.NextPhase)
	assert.Zero(t, d.State.StreakCount)
	assert.NotEmpty(t, d.Guidance)
}

func TestEvaluate_BacktrackBeatsForwardSignals(t *testing.T) {
	c := New(DefaultConfig())
	// Even a confirmation phrase does not advance when the message is
	// classified as introducing a scope change.
	d := c.Evaluate(Input{
		Phase:     domain.PhaseValidation,
		Message:   "Looks good but actually we need to cover EMEA too",
		Backtrack: domain.BacktrackScopeChange,
		State:     domain.SessionState{Phase: domain.PhaseValidation},
	})

	assert.True(t, d.Backtracked)
	assert.Equal(t, domain.PhaseDiscovery, d.NextPhase)
	assert.False(t, d.Transitioned)
}
