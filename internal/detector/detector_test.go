package detector

import (
	"testing"

	"github.com/avelasco/stride/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_EmptyInput(t *testing.T) {
	d := New()
	for _, text := range []string{"", "   ", "\t\n"} {
		result := d.Detect(text)
		assert.False(t, result.Detected)
		assert.Empty(t, result.Patterns)
		assert.Nil(t, result.Reframing)
		assert.Zero(t, result.Confidence)
	}
}

func TestDetect_ActivityFocused(t *testing.T) {
	d := New()
	result := d.Detect("Launch the new mobile app")

	require.True(t, result.Detected)
	require.True(t, result.Has(domain.PatternActivityFocused))
	dom := result.Dominant()
	require.NotNil(t, dom)
	assert.Equal(t, domain.PatternActivityFocused, dom.ID)
	assert.Greater(t, dom.Confidence, 0.6)
}

func TestDetect_OutcomeObjectiveClean(t *testing.T) {
	d := New()
	result := d.Detect("Dominate the enterprise market")
	assert.False(t, result.Has(domain.PatternActivityFocused))
}

func TestDetect_QuantifiedActivityNotFlagged(t *testing.T) {
	d := New()
	// Activity verb in service of a measured outcome should not fire.
	result := d.Detect("Launch onboarding revamp to increase activation from 40% to 60%")
	assert.False(t, result.Has(domain.PatternActivityFocused))
}

func TestDetect_BinaryThinking(t *testing.T) {
	d := New()
	result := d.Detect("Successfully complete the replatforming project")

	require.True(t, result.Has(domain.PatternBinaryThinking))
	for _, p := range result.Patterns {
		if p.ID == domain.PatternBinaryThinking {
			// "successfully" plus a terminal verb is the strongest form.
			assert.Greater(t, p.Confidence, 0.8)
		}
	}
}

func TestDetect_BinaryThinkingSuppressedByMetric(t *testing.T) {
	d := New()
	result := d.Detect("Complete migration of 95% of accounts")
	assert.False(t, result.Has(domain.PatternBinaryThinking))
}

func TestDetect_VagueOutcome(t *testing.T) {
	d := New()
	result := d.Detect("Make the product significantly better")
	assert.True(t, result.Has(domain.PatternVagueOutcome))

	quantified := d.Detect("Make onboarding significantly better, raising activation rate to 60%")
	assert.False(t, quantified.Has(domain.PatternVagueOutcome))
}

func TestDetect_VanityMetrics(t *testing.T) {
	d := New()
	result := d.Detect("Grow our followers and page views this quarter")
	assert.True(t, result.Has(domain.PatternVanityMetrics))

	paired := d.Detect("Grow followers that convert to revenue")
	assert.False(t, paired.Has(domain.PatternVanityMetrics))
}

func TestDetect_BusinessAsUsual(t *testing.T) {
	d := New()
	result := d.Detect("Maintain our current service levels")
	assert.True(t, result.Has(domain.PatternBusinessAsUsual))

	stretch := d.Detect("Maintain quality while we double throughput")
	assert.False(t, stretch.Has(domain.PatternBusinessAsUsual))
}

func TestDetect_KitchenSink(t *testing.T) {
	d := New()
	result := d.Detect("Grow revenue, launch the new app, hire five engineers, and improve retention")
	assert.True(t, result.Has(domain.PatternKitchenSink))

	focused := d.Detect("Grow enterprise revenue")
	assert.False(t, focused.Has(domain.PatternKitchenSink))
}

func TestDetect_MultiplePatternsCoFire(t *testing.T) {
	d := New()
	result := d.Detect("Build the dashboard, write the docs, and significantly improve things")

	assert.True(t, result.Has(domain.PatternActivityFocused))
	assert.True(t, result.Has(domain.PatternVagueOutcome))
	// Detection order preserved: activity_focused before vague_outcome.
	require.GreaterOrEqual(t, len(result.Patterns), 2)
	assert.Equal(t, domain.PatternActivityFocused, result.Patterns[0].ID)
}

func TestDetect_ConfidenceIsMaxOfPatterns(t *testing.T) {
	d := New()
	result := d.Detect("Build the dashboard, write the docs, and significantly improve things")
	require.True(t, result.Detected)

	max := 0.0
	for _, p := range result.Patterns {
		if p.Confidence > max {
			max = p.Confidence
		}
	}
	assert.Equal(t, max, result.Confidence)
}

func TestDetect_Deterministic(t *testing.T) {
	d := New()
	text := "Launch the portal, maintain uptime, and significantly grow usage"
	first := d.Detect(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, d.Detect(text))
	}
}

func TestDetect_PathologicalInputsAreTotal(t *testing.T) {
	d := New()
	inputs := []string{
		"🚀🚀🚀",
		"日本語のテキストです",
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"and and and and and and",
		"!!!,,,;;;",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { d.Detect(in) }, in)
	}
}
