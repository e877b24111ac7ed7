package scorer

import "github.com/avelasco/stride/internal/domain"

// WeightTable maps dimensions to integer percentages. Every table used
// for an overall score sums to exactly 100.
type WeightTable map[domain.Dimension]int

// ObjectiveWeights returns the weighting for objective scoring. When an
// organizational scope is supplied, scope appropriateness takes over the
// alignment share.
func ObjectiveWeights(withScope bool) WeightTable {
	w := WeightTable{
		domain.DimOutcomeOrientation: 30,
		domain.DimClarity:            20,
		domain.DimInspiration:        15,
		domain.DimAlignment:          15,
		domain.DimAmbition:           20,
	}
	if withScope {
		delete(w, domain.DimAlignment)
		w[domain.DimScopeAppropriateness] = 15
	}
	return w
}

// KeyResultWeights returns the weighting for key result scoring.
func KeyResultWeights() WeightTable {
	return WeightTable{
		domain.DimQuantification:    30,
		domain.DimOutcomeVsActivity: 25,
		domain.DimAchievability:     10,
		domain.DimChallengeLevel:    10,
		domain.DimRelevance:         15,
		domain.DimTimebound:         10,
	}
}

// Sum returns the total of all weights.
func (w WeightTable) Sum() int {
	total := 0
	for _, v := range w {
		total += v
	}
	return total
}

// weightedOverall combines dimension scores using the table. Dimensions
// missing from scores contribute nothing, which only happens on
// programmer error since scorers fill every weighted dimension.
func weightedOverall(scores map[domain.Dimension]int, weights WeightTable) int {
	total := 0
	for dim, weight := range weights {
		total += scores[dim] * weight
	}
	return (total + 50) / 100 // round to nearest
}
