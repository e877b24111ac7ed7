package scorer

import (
	"testing"

	"github.com/avelasco/stride/internal/domain"
	"github.com/stretchr/testify/assert"
)

// Every weight table in the product must sum to exactly 100.
func TestWeightTables_SumTo100(t *testing.T) {
	tables := map[string]WeightTable{
		"objective":            ObjectiveWeights(false),
		"objective_with_scope": ObjectiveWeights(true),
		"key_result":           KeyResultWeights(),
	}
	for name, table := range tables {
		assert.Equal(t, 100, table.Sum(), name)
	}
}

func TestObjectiveWeights_ScopeSwap(t *testing.T) {
	plain := ObjectiveWeights(false)
	scoped := ObjectiveWeights(true)

	assert.Contains(t, plain, domain.DimAlignment)
	assert.NotContains(t, plain, domain.DimScopeAppropriateness)
	assert.Contains(t, scoped, domain.DimScopeAppropriateness)
	assert.NotContains(t, scoped, domain.DimAlignment)
}

func TestWeightedOverall_Rounds(t *testing.T) {
	scores := map[domain.Dimension]int{
		domain.DimOutcomeOrientation: 100,
		domain.DimClarity:            0,
	}
	weights := WeightTable{
		domain.DimOutcomeOrientation: 55,
		domain.DimClarity:            45,
	}
	assert.Equal(t, 55, weightedOverall(scores, weights))
}

func TestStretchRatio(t *testing.T) {
	tests := []struct {
		text   string
		ratio  float64
		reduce bool
		ok     bool
	}{
		{"increase mau from 10k to 20k", 2.0, false, true},
		{"reduce churn from 8% to 5%", 0.625, true, true},
		{"increase conversion by 60%", 1.6, false, true},
		{"reduce cost by 40%", 0.6, true, true},
		{"grow revenue 2.5x", 2.5, false, true},
		{"achieve 20k users", 0, false, false},
	}
	for _, tt := range tests {
		ratio, reduce, ok := stretchRatio(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		assert.Equal(t, tt.reduce, reduce, tt.text)
		if tt.ok {
			assert.InDelta(t, tt.ratio, ratio, 0.001, tt.text)
		}
	}
}
