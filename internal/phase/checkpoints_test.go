package phase

import (
	"testing"
	"time"

	"github.com/avelasco/stride/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCheckpoints_SequenceOrderStrictlyIncreasing(t *testing.T) {
	now := time.Now().UTC()
	for p := range checkpointTemplates {
		cps := NewCheckpoints("sess-1", p, now)
		require.NotEmpty(t, cps, p)
		seen := map[int]bool{}
		prev := 0
		for _, cp := range cps {
			assert.False(t, seen[cp.SequenceOrder], "duplicate order in %s", p)
			seen[cp.SequenceOrder] = true
			assert.Greater(t, cp.SequenceOrder, prev)
			prev = cp.SequenceOrder
			assert.False(t, cp.IsComplete)
			assert.NotEmpty(t, cp.CompletionCriteria)
			assert.Equal(t, p, cp.Phase)
		}
	}
}

func TestCompleteNext_AtMostOnePerMessage(t *testing.T) {
	now := time.Now().UTC()
	cps := NewCheckpoints("sess-1", domain.PhaseDiscovery, now)

	// Satisfies both the stakeholder and the outcome criterion, but
	// only the earliest incomplete checkpoint completes.
	sig := Signals{Message: "our customers need better retention"}
	completed, ok := CompleteNext(cps, sig, 0.8, now)
	require.True(t, ok)
	assert.Equal(t, 1, completed.SequenceOrder)
	assert.Equal(t, []string{sig.Message}, completed.EvidenceCollected)

	done := 0
	for _, cp := range cps {
		if cp.IsComplete {
			done++
		}
	}
	assert.Equal(t, 1, done)

	// Next message completes the next one in order.
	second, ok := CompleteNext(cps, Signals{Message: "improve onboarding this quarter"}, 0.7, now)
	require.True(t, ok)
	assert.Equal(t, 2, second.SequenceOrder)
}

func TestCompleteNext_UnrelatedMessagesCompleteNothing(t *testing.T) {
	now := time.Now().UTC()
	cps := NewCheckpoints("sess-1", domain.PhaseDiscovery, now)

	for _, msg := range []string{"hello", "hmm", "not sure yet"} {
		_, ok := CompleteNext(cps, Signals{Message: msg}, 0.9, now)
		assert.False(t, ok, "filler %q must not complete a checkpoint", msg)
	}
	for _, cp := range cps {
		assert.False(t, cp.IsComplete)
		assert.Empty(t, cp.EvidenceCollected)
	}
}

func TestCompleteNext_CriteriaGateEachPhase(t *testing.T) {
	now := time.Now().UTC()

	t.Run("refinement needs a captured objective", func(t *testing.T) {
		cps := NewCheckpoints("sess-1", domain.PhaseRefinement, now)
		_, ok := CompleteNext(cps, Signals{Message: "what should I write?"}, 0.8, now)
		assert.False(t, ok)

		sig := Signals{
			Message: "Grow customer retention from 70% to 85%",
			Draft:   domain.OKRDraft{Objective: "Grow customer retention from 70% to 85%"},
		}
		completed, ok := CompleteNext(cps, sig, 0.8, now)
		require.True(t, ok)
		assert.Equal(t, 1, completed.SequenceOrder)

		// Acceptance checkpoint only completes once the transition fires.
		_, ok = CompleteNext(cps, sig, 0.8, now)
		assert.False(t, ok)
		sig.Event = EventObjectiveAccepted
		second, ok := CompleteNext(cps, sig, 0.8, now)
		require.True(t, ok)
		assert.Equal(t, 2, second.SequenceOrder)
	})

	t.Run("activity-focused objective blocks refinement", func(t *testing.T) {
		cps := NewCheckpoints("sess-1", domain.PhaseRefinement, now)
		sig := Signals{
			Message: "Launch the new dashboard",
			Draft:   domain.OKRDraft{Objective: "Launch the new dashboard"},
			Detection: domain.DetectionResult{
				Detected:   true,
				Patterns:   []domain.Pattern{{ID: domain.PatternActivityFocused, Name: "Activity-focused", Confidence: 0.8}},
				Confidence: 0.8,
			},
		}
		_, ok := CompleteNext(cps, sig, 0.8, now)
		assert.False(t, ok)
	})

	t.Run("kr checkpoints need real key results", func(t *testing.T) {
		cps := NewCheckpoints("sess-1", domain.PhaseKRDiscovery, now)

		one := Signals{Draft: domain.OKRDraft{KeyResults: []string{"Reduce churn"}}}
		_, ok := CompleteNext(cps, one, 0.8, now)
		assert.False(t, ok, "a single key result is not enough")

		two := Signals{Draft: domain.OKRDraft{KeyResults: []string{
			"Reduce churn from 5% to 3%",
			"Increase retention from 70% to 85%",
		}}}
		completed, ok := CompleteNext(cps, two, 0.8, now)
		require.True(t, ok)
		assert.Equal(t, 1, completed.SequenceOrder)

		// Both KRs carry targets, so the metric checkpoint follows.
		second, ok := CompleteNext(cps, two, 0.8, now)
		require.True(t, ok)
		assert.Equal(t, 2, second.SequenceOrder)

		// Timebound checkpoint waits for strong timebound scores.
		_, ok = CompleteNext(cps, two, 0.8, now)
		assert.False(t, ok)
		two.KRScores = []domain.QualityScore{
			{Overall: 80, Dimensions: map[domain.Dimension]int{domain.DimTimebound: 90}},
			{Overall: 75, Dimensions: map[domain.Dimension]int{domain.DimTimebound: 80}},
		}
		third, ok := CompleteNext(cps, two, 0.8, now)
		require.True(t, ok)
		assert.Equal(t, 3, third.SequenceOrder)
	})

	t.Run("validation needs review then approval", func(t *testing.T) {
		cps := NewCheckpoints("sess-1", domain.PhaseValidation, now)
		draft := domain.OKRDraft{
			Objective:  "Grow customer retention",
			KeyResults: []string{"Reduce churn from 5% to 3% by Q4"},
		}

		_, ok := CompleteNext(cps, Signals{Message: "one moment", Draft: draft}, 0.8, now)
		assert.False(t, ok)

		reviewed, ok := CompleteNext(cps, Signals{Message: "the retention objective looks right for us", Draft: draft}, 0.8, now)
		require.True(t, ok)
		assert.Equal(t, 1, reviewed.SequenceOrder)

		_, ok = CompleteNext(cps, Signals{Message: "ship it", Draft: draft}, 0.9, now)
		assert.False(t, ok, "approval checkpoint waits for the final approval event")
		approved, ok := CompleteNext(cps, Signals{Message: "ship it", Draft: draft, Event: EventFinalApproval}, 0.9, now)
		require.True(t, ok)
		assert.Equal(t, 2, approved.SequenceOrder)
	})
}

func TestCompleteNext_ExhaustedReturnsFalse(t *testing.T) {
	now := time.Now().UTC()
	cps := NewCheckpoints("sess-1", domain.PhaseDiscovery, now)
	sig := Signals{Message: "help our customers improve retention this quarter"}
	for range cps {
		_, ok := CompleteNext(cps, sig, 0.9, now)
		require.True(t, ok)
	}
	_, ok := CompleteNext(cps, sig, 0.9, now)
	assert.False(t, ok)
}

func TestResetBetween_ClearsTargetThroughCurrent(t *testing.T) {
	now := time.Now().UTC()
	var cps []domain.Checkpoint
	for _, p := range []domain.Phase{domain.PhaseDiscovery, domain.PhaseRefinement, domain.PhaseKRDiscovery} {
		cps = append(cps, NewCheckpoints("sess-1", p, now)...)
	}
	for i := range cps {
		cps[i].IsComplete = true
		cps[i].CompletionConfidence = 0.9
	}

	ResetBetween(cps, domain.PhaseRefinement, domain.PhaseKRDiscovery, now)

	for _, cp := range cps {
		switch cp.Phase {
		case domain.PhaseDiscovery:
			assert.True(t, cp.IsComplete, "discovery untouched")
		default:
			assert.False(t, cp.IsComplete, "%s reset", cp.Phase)
			assert.Zero(t, cp.CompletionConfidence)
			assert.Empty(t, cp.EvidenceCollected)
		}
	}
}

func TestCompletionFraction(t *testing.T) {
	now := time.Now().UTC()
	cps := NewCheckpoints("sess-1", domain.PhaseDiscovery, now)
	assert.Equal(t, 0.0, CompletionFraction(cps, domain.PhaseDiscovery))

	CompleteNext(cps, Signals{Message: "our customers churn too fast"}, 0.9, now)
	assert.InDelta(t, 1.0/3.0, CompletionFraction(cps, domain.PhaseDiscovery), 0.001)

	assert.Equal(t, 0.0, CompletionFraction(cps, domain.PhaseRefinement))
}
