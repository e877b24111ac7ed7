package phase

import (
	"fmt"
	"math"
	"testing"

	"github.com/avelasco/stride/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(overall int) *domain.QualityScore {
	return &domain.QualityScore{
		Overall:    overall,
		Dimensions: map[domain.Dimension]int{domain.DimOutcomeOrientation: overall},
		Confidence: 0.8,
	}
}

func TestEvaluate_DiscoveryAdvancesOnCleanObjective(t *testing.T) {
	c := New(DefaultConfig())
	d := c.Evaluate(Input{
		Phase:   domain.PhaseDiscovery,
		Message: "We want to grow revenue for our enterprise customers",
		State:   domain.SessionState{Phase: domain.PhaseDiscovery},
	})

	assert.True(t, d.Transitioned)
	assert.Equal(t, domain.PhaseRefinement, d.NextPhase)
	assert.Equal(t, EventObjectiveEstablished, d.Event)
}

func TestEvaluate_DiscoveryBlockedByAntiPattern(t *testing.T) {
	c := New(DefaultConfig())
	d := c.Evaluate(Input{
		Phase:   domain.PhaseDiscovery,
		Message: "Launch the new portal for our customers to improve revenue",
		Detection: domain.DetectionResult{
			Detected:   true,
			Patterns:   []domain.Pattern{{ID: domain.PatternActivityFocused, Confidence: 0.75}},
			Confidence: 0.75,
		},
		State: domain.SessionState{Phase: domain.PhaseDiscovery},
	})

	assert.False(t, d.Transitioned)
	assert.Equal(t, domain.PhaseDiscovery, d.NextPhase)
}

func TestEvaluate_DiscoveryAdvancesAfterEnoughAnswers(t *testing.T) {
	c := New(DefaultConfig())
	// Two answers already given; this message is the third. The message
	// still carries an anti-pattern, but enough questions were answered.
	d := c.Evaluate(Input{
		Phase:   domain.PhaseDiscovery,
		Message: "Mostly our enterprise customers, we want retention up",
		Detection: domain.DetectionResult{
			Detected:   true,
			Patterns:   []domain.Pattern{{ID: domain.PatternVagueOutcome, Confidence: 0.7}},
			Confidence: 0.7,
		},
		State: domain.SessionState{Phase: domain.PhaseDiscovery, AnsweredQuestions: 2},
	})

	assert.True(t, d.Transitioned)
	assert.Equal(t, domain.PhaseRefinement, d.NextPhase)
	assert.Equal(t, 3, d.State.AnsweredQuestions)
}

func TestEvaluate_DiscoveryNeedsBusinessContext(t *testing.T) {
	c := New(DefaultConfig())
	// Objective-like, pattern-free, but no stakeholder anywhere.
	d := c.Evaluate(Input{
		Phase:   domain.PhaseDiscovery,
		Message: "Become the best at what we do",
		State:   domain.SessionState{Phase: domain.PhaseDiscovery},
	})
	assert.False(t, d.Transitioned)
}

func TestEvaluate_RefinementScoreGate(t *testing.T) {
	c := New(DefaultConfig())

	below := c.Evaluate(Input{
		Phase:          domain.PhaseRefinement,
		Message:        "How about: make onboarding great",
		ObjectiveScore: score(55),
		State:          domain.SessionState{Phase: domain.PhaseRefinement},
	})
	assert.False(t, below.Transitioned)
	assert.Equal(t, domain.PhaseRefinement, below.NextPhase)
	assert.Equal(t, 1, below.State.Iterations)

	above := c.Evaluate(Input{
		Phase:          domain.PhaseRefinement,
		Message:        "Make mobile our fastest growing channel",
		ObjectiveScore: score(78),
		State:          domain.SessionState{Phase: domain.PhaseRefinement},
	})
	assert.True(t, above.Transitioned)
	assert.Equal(t, domain.PhaseKRDiscovery, above.NextPhase)
}

func TestEvaluate_RefinementFinalizationPhrase(t *testing.T) {
	c := New(DefaultConfig())
	d := c.Evaluate(Input{
		Phase:          domain.PhaseRefinement,
		Message:        "Looks good, let's move to key results",
		ObjectiveScore: score(72),
		State:          domain.SessionState{Phase: domain.PhaseRefinement},
	})

	assert.True(t, d.Transitioned)
	assert.Equal(t, domain.PhaseKRDiscovery, d.NextPhase)
}

func TestEvaluate_RefinementForceAdvanceAfterMaxIterations(t *testing.T) {
	cfg := DefaultConfig()
	c := New(cfg)
	d := c.Evaluate(Input{
		Phase:          domain.PhaseRefinement,
		Message:        "Still iterating on the wording",
		ObjectiveScore: score(40),
		State: domain.SessionState{
			Phase:      domain.PhaseRefinement,
			Iterations: cfg.MaxRefinementIterations - 1,
		},
	})

	assert.True(t, d.Transitioned)
	assert.Equal(t, domain.PhaseKRDiscovery, d.NextPhase)
	assert.NotEmpty(t, d.Diagnostics)
}

func TestEvaluate_KRDiscoveryGate(t *testing.T) {
	c := New(DefaultConfig())

	krs := []domain.QualityScore{*score(80), *score(75), *score(90)}
	d := c.Evaluate(Input{
		Phase:    domain.PhaseKRDiscovery,
		Message:  "Here is the third key result",
		KRScores: krs,
		State:    domain.SessionState{Phase: domain.PhaseKRDiscovery},
	})
	assert.True(t, d.Transitioned)
	assert.Equal(t, domain.PhaseValidation, d.NextPhase)

	weak := c.Evaluate(Input{
		Phase:    domain.PhaseKRDiscovery,
		Message:  "Here is the third key result",
		KRScores: []domain.QualityScore{*score(80), *score(30)},
		State:    domain.SessionState{Phase: domain.PhaseKRDiscovery},
	})
	assert.False(t, weak.Transitioned)

	single := c.Evaluate(Input{
		Phase:    domain.PhaseKRDiscovery,
		Message:  "Just one key result",
		KRScores: []domain.QualityScore{*score(95)},
		State:    domain.SessionState{Phase: domain.PhaseKRDiscovery},
	})
	assert.False(t, single.Transitioned)
}

func TestEvaluate_ValidationGateRequiresConfirmation(t *testing.T) {
	c := New(DefaultConfig())

	// Property: no message lacking a confirmation phrase may complete.
	nonConfirmations := []string{
		"what about the second key result",
		"hmm",
		"can we tweak the deadline",
		"the objective is perfect and the KRs are great", // praise is not approval
		"",
		"complete", "done", "finish it up",
	}
	for _, msg := range nonConfirmations {
		d := c.Evaluate(Input{
			Phase:   domain.PhaseValidation,
			Message: msg,
			State:   domain.SessionState{Phase: domain.PhaseValidation},
		})
		assert.Equal(t, domain.PhaseValidation, d.NextPhase, "message %q must not complete", msg)
		assert.False(t, d.Transitioned, "message %q must not complete", msg)
	}

	approved := c.Evaluate(Input{
		Phase:   domain.PhaseValidation,
		Message: "Approve, ship it",
		State:   domain.SessionState{Phase: domain.PhaseValidation},
	})
	assert.True(t, approved.Transitioned)
	assert.Equal(t, domain.PhaseCompleted, approved.NextPhase)
	assert.Equal(t, EventFinalApproval, approved.Event)
}

func TestEvaluate_CompletedIsTerminal(t *testing.T) {
	c := New(DefaultConfig())
	d := c.Evaluate(Input{
		Phase:   domain.PhaseCompleted,
		Message: "approve, looks good, finalize",
		State:   domain.SessionState{Phase: domain.PhaseCompleted},
	})
	assert.Equal(t, domain.PhaseCompleted, d.NextPhase)
	assert.False(t, d.Transitioned)
	assert.NotEmpty(t, d.Guidance)
}

func TestEvaluate_FailClosedOnMalformedSignals(t *testing.T) {
	c := New(DefaultConfig())

	malformed := []Input{
		{
			Phase:     domain.PhaseRefinement,
			Message:   "looks good",
			Detection: domain.DetectionResult{Confidence: math.NaN()},
			State:     domain.SessionState{Phase: domain.PhaseRefinement},
		},
		{
			Phase:          domain.PhaseRefinement,
			Message:        "looks good",
			ObjectiveScore: &domain.QualityScore{Overall: 250, Confidence: 0.5},
			State:          domain.SessionState{Phase: domain.PhaseRefinement},
		},
		{
			Phase:     domain.PhaseValidation,
			Message:   "approve",
			Detection: domain.DetectionResult{Detected: true},
			State:     domain.SessionState{Phase: domain.PhaseValidation},
		},
		{
			Phase:    domain.PhaseKRDiscovery,
			Message:  "looks good",
			KRScores: []domain.QualityScore{{Overall: -3, Confidence: 0.5}},
			State:    domain.SessionState{Phase: domain.PhaseKRDiscovery},
		},
	}
	for i, in := range malformed {
		d := c.Evaluate(in)
		assert.False(t, d.Transitioned, "case %d", i)
		assert.Equal(t, in.Phase, d.NextPhase, "case %d", i)
		assert.NotEmpty(t, d.Diagnostics, "case %d", i)
	}
}

func TestEvaluate_UnknownPhasePanics(t *testing.T) {
	c := New(DefaultConfig())
	assert.Panics(t, func() {
		c.Evaluate(Input{Phase: domain.Phase("limbo")})
	})
}

func TestEvaluate_SuggestionsCarryReframingQuestions(t *testing.T) {
	c := New(DefaultConfig())
	d := c.Evaluate(Input{
		Phase:   domain.PhaseDiscovery,
		Message: "Launch the portal",
		Detection: domain.DetectionResult{
			Detected:   true,
			Patterns:   []domain.Pattern{{ID: domain.PatternActivityFocused, Confidence: 0.75}},
			Confidence: 0.75,
			Reframing: &domain.ReframingStrategy{
				Questions: []string{"What outcome would completing this activity produce?"},
			},
		},
		State: domain.SessionState{Phase: domain.PhaseDiscovery},
	})

	require.NotEmpty(t, d.Suggestions)
	assert.Contains(t, d.Suggestions, "What outcome would completing this activity produce?")
}

func TestEvaluate_ProgressAdvancesWithPhase(t *testing.T) {
	c := New(DefaultConfig())
	prev := -1.0
	phases := []domain.Phase{
		domain.PhaseDiscovery, domain.PhaseRefinement,
		domain.PhaseKRDiscovery, domain.PhaseValidation,
	}
	for _, p := range phases {
		d := c.Evaluate(Input{Phase: p, Message: "hm", State: domain.SessionState{Phase: p}})
		assert.Greater(t, d.State.Progress, prev, fmt.Sprintf("phase %s", p))
		prev = d.State.Progress
	}
}
