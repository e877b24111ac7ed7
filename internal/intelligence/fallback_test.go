package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avelasco/stride/internal/domain"
	"github.com/avelasco/stride/internal/phase"
	"github.com/avelasco/stride/internal/testutil"
)

func TestHeuristicBacktrack(t *testing.T) {
	cases := []struct {
		message string
		want    domain.BacktrackReason
	}{
		{"Actually this should be a company-wide goal", domain.BacktrackScopeChange},
		{"This is bigger than my team", domain.BacktrackScopeChange},
		{"We forgot about the enterprise segment", domain.BacktrackMissedDetail},
		{"I missed one thing from the discovery questions", domain.BacktrackMissedDetail},
		{"Actually, the real problem is churn, not acquisition", domain.BacktrackNewInsight},
		{"On second thought the objective is wrong", domain.BacktrackNewInsight},
		{"Let's go back to the objective", domain.BacktrackNewInsight},
		{"Increase retention from 70% to 85%", domain.BacktrackNone},
		{"Looks good, approve", domain.BacktrackNone},
		{"", domain.BacktrackNone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HeuristicBacktrack(tc.message), "message: %q", tc.message)
	}
}

func TestHeuristicBacktrack_ScopeWinsOverInsight(t *testing.T) {
	// Both cue families appear; scope is the more specific signal.
	got := HeuristicBacktrack("Actually this is a company goal")
	assert.Equal(t, domain.BacktrackScopeChange, got)
}

func TestFallbackReply(t *testing.T) {
	d := phase.Decision{
		Guidance:    "Sharpen the objective.",
		Suggestions: []string{"one", "two", "three", "four"},
		Diagnostics: []string{"advancing after 3 refinement rounds without reaching the score gate"},
	}

	got := FallbackReply(d)

	assert.Contains(t, got, "Sharpen the objective.")
	assert.Contains(t, got, "- one")
	assert.Contains(t, got, "- three")
	assert.NotContains(t, got, "four")
	assert.Contains(t, got, "(advancing after 3 refinement rounds")
}

func TestFallbackSummary(t *testing.T) {
	s := testutil.NewTestSession(
		testutil.WithDraft(domain.OKRDraft{
			Objective:  "Grow retention meaningfully",
			KeyResults: []string{"KR one", "KR two"},
		}),
		testutil.WithObjectiveScore(domain.QualityScore{Overall: 81}),
	)

	got := FallbackSummary(s)

	assert.Contains(t, got, "Objective: Grow retention meaningfully")
	assert.Contains(t, got, "KR1: KR one")
	assert.Contains(t, got, "KR2: KR two")
	assert.Contains(t, got, "81/100")
}
