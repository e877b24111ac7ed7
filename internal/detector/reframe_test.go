package detector

import (
	"testing"

	"github.com/avelasco/stride/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReframeBank_CoversEveryPattern(t *testing.T) {
	ids := []domain.PatternID{
		domain.PatternActivityFocused,
		domain.PatternBinaryThinking,
		domain.PatternVagueOutcome,
		domain.PatternVanityMetrics,
		domain.PatternBusinessAsUsual,
		domain.PatternKitchenSink,
	}
	for _, id := range ids {
		strategy, ok := reframeBank[id]
		require.True(t, ok, "missing reframe bank for %s", id)
		assert.NotEmpty(t, strategy.Questions, id)
		assert.NotEmpty(t, strategy.Examples, id)
		for _, ex := range strategy.Examples {
			assert.NotEmpty(t, ex.Before, id)
			assert.NotEmpty(t, ex.After, id)
		}
	}
}

func TestDetect_ReframingFollowsDominantPattern(t *testing.T) {
	d := New()
	result := d.Detect("Launch the new mobile app")

	require.NotNil(t, result.Reframing)
	assert.Equal(t, reframeBank[domain.PatternActivityFocused].Questions, result.Reframing.Questions)
}

func TestDetect_ReframingCopyIsIsolated(t *testing.T) {
	d := New()
	result := d.Detect("Launch the new mobile app")
	require.NotNil(t, result.Reframing)

	result.Reframing.Questions[0] = "mutated"
	fresh := d.Detect("Launch the new mobile app")
	assert.NotEqual(t, "mutated", fresh.Reframing.Questions[0])
}
