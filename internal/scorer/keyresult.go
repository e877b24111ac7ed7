package scorer

import (
	"github.com/avelasco/stride/internal/domain"
	"github.com/avelasco/stride/internal/textscan"
)

// ScoreKeyResult scores a proposed key result. parentObjective informs
// the relevance dimension; an empty parent degrades relevance to the
// neutral 50 instead of failing.
func (s *Scorer) ScoreKeyResult(text, parentObjective string) domain.QualityScore {
	norm := textscan.Normalize(text)

	quant, quantSignal := scoreQuantification(norm)
	timebound, timeSignal := scoreTimebound(norm)
	challenge, challengeSignal := scoreChallengeLevel(norm)
	relevance, relevanceSignal := scoreRelevance(norm, parentObjective)

	dims := map[domain.Dimension]int{
		domain.DimQuantification:    quant,
		domain.DimOutcomeVsActivity: scoreOutcomeOrientation(norm),
		domain.DimAchievability:     scoreMeasurementFeasibility(norm),
		domain.DimChallengeLevel:    challenge,
		domain.DimRelevance:         relevance,
		domain.DimTimebound:         timebound,
	}

	signals := 1 // outcome-vs-activity always has verb signal
	for _, has := range []bool{quantSignal, timeSignal, challengeSignal, relevanceSignal, hasNamedMetric(norm)} {
		if has {
			signals++
		}
	}

	score := domain.QualityScore{
		Overall:    weightedOverall(dims, KeyResultWeights()),
		Dimensions: dims,
		Confidence: confidenceFromSignals(signals, 6),
	}
	keyResultFeedback(&score)
	return score
}

// scoreQuantification grades metric + baseline + target completeness:
// 100 with all three, 75 without a baseline, 50 for a bare metric,
// 0 with no number or unit at all.
func scoreQuantification(text string) (int, bool) {
	stripped := stripDeadline(text)
	nums := textscan.Numbers(stripped)
	metric := hasNamedMetric(stripped) || textscan.HasPercent(stripped)

	switch {
	case metric && len(nums) >= 2:
		return 100, true
	case metric && len(nums) == 1:
		return 75, true
	case len(nums) >= 1:
		return 60, true
	case metric:
		return 50, true
	default:
		return 0, false
	}
}

// scoreTimebound grades deadline phrasing: full quarter/month-plus-year
// deadlines score 100, a bare quarter or month gets partial credit, no
// timeframe scores 0.
func scoreTimebound(text string) (int, bool) {
	switch {
	case deadlineFullRe.MatchString(text):
		return 100, true
	case deadlinePartialRe.MatchString(text):
		return 60, true
	default:
		return 0, false
	}
}

// scoreMeasurementFeasibility asks whether the KR could actually be
// measured: a named metric with a number is fully feasible, a bare
// metric is measurable in principle, anything else is doubtful.
func scoreMeasurementFeasibility(text string) int {
	metric := hasNamedMetric(text) || textscan.HasPercent(text)
	switch {
	case metric && textscan.HasNumber(text):
		return 100
	case metric:
		return 50
	default:
		return 30
	}
}

// scoreChallengeLevel grades the stretch ratio. Growth of 1.5x-3x (or a
// 30-70% reduction) is the ambitious-but-realistic band; under 20%
// change scores near zero; past ~5x is flagged as likely unrealistic and
// scored moderately.
func scoreChallengeLevel(text string) (int, bool) {
	ratio, reduce, ok := stretchRatio(text)
	if !ok {
		return 50, false
	}
	if reduce && ratio < 1 {
		return challengeFromReduction(1 - ratio), true
	}
	return challengeFromGrowth(ratio), true
}

func challengeFromGrowth(ratio float64) int {
	switch {
	case ratio <= 1.05:
		return 5
	case ratio < 1.5:
		return int(40 + (ratio-1.05)/0.45*55)
	case ratio <= 2:
		return int(95 + (ratio-1.5)*10)
	case ratio <= 3:
		return 100
	case ratio <= 5:
		return int(100 - (ratio-3)/2*30)
	default:
		return 60
	}
}

func challengeFromReduction(red float64) int {
	switch {
	case red <= 0.05:
		return 5
	case red < 0.2:
		return int(10 + (red-0.05)/0.15*30)
	case red < 0.3:
		return int(40 + (red-0.2)/0.1*55)
	case red <= 0.7:
		return clamp(int(95+(red-0.3)*25), 95, 100)
	case red <= 0.85:
		return int(100 - (red-0.7)/0.15*30)
	default:
		return 55
	}
}

// scoreRelevance measures vocabulary overlap with the parent objective.
func scoreRelevance(text, parentObjective string) (int, bool) {
	parent := textscan.Normalize(parentObjective)
	if parent == "" {
		return 50, false
	}
	overlap := textscan.Overlap(text, parent)
	scaled := overlap * 3
	if scaled > 1 {
		scaled = 1
	}
	return 40 + int(scaled*60), true
}

func keyResultFeedback(score *domain.QualityScore) {
	dims := score.Dimensions
	switch dims[domain.DimQuantification] {
	case 75:
		score.Feedback = append(score.Feedback, "Target present but no baseline.")
		score.Improvements = append(score.Improvements, "State where the metric is today, e.g. \"from 10K to 20K\".")
	case 50, 60:
		score.Improvements = append(score.Improvements, "Pair the metric with a baseline and a target number.")
	case 0:
		score.Feedback = append(score.Feedback, "No number or unit found; this is not yet measurable.")
		score.Improvements = append(score.Improvements, "Pick a metric and quantify it.")
	}
	if dims[domain.DimTimebound] == 0 {
		score.Improvements = append(score.Improvements, "Add a deadline such as \"by Q2 2026\".")
	} else if dims[domain.DimTimebound] < 100 {
		score.Improvements = append(score.Improvements, "Add a year to the deadline.")
	}
	if dims[domain.DimChallengeLevel] <= 40 {
		score.Feedback = append(score.Feedback, "The target barely moves the metric.")
	}
	if dims[domain.DimChallengeLevel] == 60 || dims[domain.DimChallengeLevel] == 55 {
		score.Feedback = append(score.Feedback, "The stretch looks unrealistic; very large multiples usually signal a guess.")
	}
	if dims[domain.DimOutcomeVsActivity] <= 40 {
		score.Improvements = append(score.Improvements, "Measure the result of the work, not the work itself.")
	}
}
