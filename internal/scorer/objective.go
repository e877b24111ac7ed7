// Package scorer computes multi-dimensional quality scores for proposed
// objectives and key results. Like the detector, scoring is pure and
// deterministic: heuristics over vocabulary tables, no I/O, no state.
package scorer

import (
	"fmt"

	"github.com/avelasco/stride/internal/domain"
	"github.com/avelasco/stride/internal/textscan"
)

// Scorer evaluates objective and key result quality. The zero value is
// not usable; construct with New.
type Scorer struct {
	// objectiveWordCap is the word count above which clarity is
	// penalized. Product-tuned, injected rather than hard-coded.
	objectiveWordCap int
}

// New creates a Scorer with the given objective word cap. A cap of zero
// falls back to the conventional 12.
func New(objectiveWordCap int) *Scorer {
	if objectiveWordCap <= 0 {
		objectiveWordCap = 12
	}
	return &Scorer{objectiveWordCap: objectiveWordCap}
}

// ScoreObjective scores a proposed objective against the organizational
// context. Missing context fields degrade to neutral scores; they never
// fail the call. When scope is empty, alignment is weighted instead of
// scope appropriateness.
func (s *Scorer) ScoreObjective(text string, ctx domain.ObjectiveContext, scope domain.OrgScope) domain.QualityScore {
	norm := textscan.Normalize(text)
	withScope := scope != ""

	dims := map[domain.Dimension]int{
		domain.DimOutcomeOrientation: scoreOutcomeOrientation(norm),
		domain.DimClarity:            s.scoreClarity(norm),
		domain.DimInspiration:        scoreInspiration(norm),
		domain.DimAmbition:           scoreObjectiveAmbition(norm),
	}
	signals := 0
	if norm != "" {
		signals = 2 // outcome + ambition always have verb signal on non-empty text
	}
	if textscan.HasNumber(norm) || hasNamedMetric(norm) {
		signals++
	}

	if withScope {
		dims[domain.DimScopeAppropriateness] = scoreScopeAppropriateness(norm, scope)
		signals++
	} else {
		alignment, hasSignal := scoreAlignment(norm, ctx)
		dims[domain.DimAlignment] = alignment
		if hasSignal {
			signals++
		}
	}

	weights := ObjectiveWeights(withScope)
	score := domain.QualityScore{
		Overall:    weightedOverall(dims, weights),
		Dimensions: dims,
		Confidence: confidenceFromSignals(signals, 5),
	}
	s.objectiveFeedback(&score, norm)
	return score
}

func scoreOutcomeOrientation(text string) int {
	if text == "" {
		return 50
	}
	leading := textscan.LeadingWord(text)
	hasOutcome := textscan.CountMatches(text, outcomeVerbs) > 0
	hasActivity := textscan.CountMatches(text, activityVerbs) > 0

	switch {
	case containsWord(activityVerbs, leading) && !hasOutcome:
		return 5
	case containsWord(outcomeVerbs, leading) && !hasActivity:
		return 95
	case hasOutcome && hasActivity:
		return 40
	case hasOutcome:
		return 75
	case hasActivity:
		return 20
	default:
		return 50
	}
}

func (s *Scorer) scoreClarity(text string) int {
	if text == "" {
		return 50
	}
	score := 70
	words := textscan.WordCount(text)
	switch {
	case words <= 8:
		score += 15
	case words > 2*s.objectiveWordCap:
		score -= 35
	case words > s.objectiveWordCap:
		score -= 20
	}
	if textscan.CountMatches(text, intensityQualifiers) > 0 {
		score -= 30
	}
	if textscan.HasNumber(text) || hasNamedMetric(text) {
		score += 10
	}
	return clamp(score, 0, 100)
}

func scoreInspiration(text string) int {
	leading := textscan.LeadingWord(text)
	switch {
	case containsWord(powerVerbs, leading):
		return 100
	case containsWord(weakVerbs, leading):
		return 45
	case containsWord(outcomeVerbs, leading):
		return 70
	case containsWord(activityVerbs, leading):
		return 20
	default:
		if textscan.CountMatches(text, powerVerbs) > 0 {
			return 75
		}
		return 30
	}
}

func scoreObjectiveAmbition(text string) int {
	switch {
	case textscan.CountMatches(text, maintenanceWords) > 0:
		return 20
	case textscan.CountMatches(text, stretchWords) > 0:
		return 90
	default:
		return 50
	}
}

// scoreAlignment measures vocabulary overlap between the objective and
// the supplied context. Without any context it returns the neutral 50
// and no signal.
func scoreAlignment(text string, ctx domain.ObjectiveContext) (int, bool) {
	ctxText := textscan.Normalize(ctx.Industry + " " + ctx.Function + " " + ctx.Timeframe)
	if ctxText == "" {
		return 50, false
	}
	overlap := textscan.Overlap(text, ctxText)
	score := 50 + int(overlap*150)
	return clamp(score, 0, 100), true
}

func scoreScopeAppropriateness(text string, scope domain.OrgScope) int {
	own := textscan.CountMatches(text, scopeIndicators[scope])
	foreign := 0
	for s, words := range scopeIndicators {
		if s == scope {
			continue
		}
		if n := textscan.CountMatches(text, words); n > foreign {
			foreign = n
		}
	}
	switch {
	case own > 0 && own >= foreign:
		return 85
	case foreign > own:
		return 40
	default:
		return 60
	}
}

func (s *Scorer) objectiveFeedback(score *domain.QualityScore, text string) {
	dims := score.Dimensions
	if dims[domain.DimOutcomeOrientation] <= 40 {
		score.Feedback = append(score.Feedback, "This reads as an activity, not an outcome.")
		score.Improvements = append(score.Improvements, "Lead with the change you want to see, not the work you plan to do.")
	}
	if dims[domain.DimClarity] < 60 {
		score.Feedback = append(score.Feedback, "The wording is vague or too long to rally around.")
		score.Improvements = append(score.Improvements,
			fmt.Sprintf("Tighten to %d words or fewer and drop qualifiers like \"significantly\".", s.objectiveWordCap))
	}
	if dims[domain.DimAmbition] <= 30 {
		score.Feedback = append(score.Feedback, "Maintenance framing rarely motivates a quarter of effort.")
		score.Improvements = append(score.Improvements, "Frame the objective as a step change from today.")
	}
	if dims[domain.DimInspiration] < 50 && textscan.WordCount(text) > 0 {
		score.Improvements = append(score.Improvements, "Try a stronger leading verb (transform, dominate, redefine).")
	}
}

// confidenceFromSignals maps the number of dimensions with real signal
// to a confidence in [0.4, 0.9].
func confidenceFromSignals(signals, total int) float64 {
	if total <= 0 {
		return 0.4
	}
	frac := float64(signals) / float64(total)
	c := 0.4 + 0.5*frac
	if c > 0.9 {
		c = 0.9
	}
	return c
}
