package textscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPhrase(t *testing.T) {
	tests := []struct {
		text   string
		phrase string
		want   bool
	}{
		{"increase revenue by 20%", "increase", true},
		{"increased revenue", "increase", false}, // word-bounded
		{"keep doing what works", "keep doing", true},
		{"the market", "mark", false},
		{"", "increase", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ContainsPhrase(tt.text, tt.phrase), "%q / %q", tt.text, tt.phrase)
	}
}

func TestNumbers(t *testing.T) {
	assert.Equal(t, []float64{10000, 20000}, Numbers("from 10K to 20K"))
	assert.Equal(t, []float64{2.5}, Numbers("grow 2.5x"))
	assert.Empty(t, Numbers("no digits here"))
}

func TestHasNumberAndPercent(t *testing.T) {
	assert.True(t, HasNumber("ship 3 features"))
	assert.False(t, HasNumber("ship features"))
	assert.True(t, HasPercent("reduce churn by 15%"))
	assert.True(t, HasPercent("reduce churn by 15 percent"))
	assert.False(t, HasPercent("reduce churn by 15"))
}

func TestLeadingWord(t *testing.T) {
	assert.Equal(t, "launch", LeadingWord("Launch the new mobile app"))
	assert.Equal(t, "", LeadingWord("   "))
}

func TestOverlap(t *testing.T) {
	assert.Equal(t, 0.0, Overlap("", "anything"))
	assert.Greater(t, Overlap("increase monthly active users", "grow active users to 20k"), 0.0)
	full := Overlap("retention rate", "retention rate")
	assert.InDelta(t, 1.0, full, 0.001)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "launch the app", Normalize("  Launch   THE app "))
}
