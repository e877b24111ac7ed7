package domain

// Pattern is a single anti-pattern match found in user text.
type Pattern struct {
	ID         PatternID
	Name       string
	Confidence float64 // [0,1]
}

// ReframeExample pairs a poorly phrased goal with its reframed version.
type ReframeExample struct {
	Before string
	After  string
}

// ReframingStrategy carries clarifying questions and examples for the
// dominant detected pattern. Produced only when at least one pattern fired.
type ReframingStrategy struct {
	Questions []string
	Examples  []ReframeExample
}

// DetectionResult is the outcome of scanning one message for anti-patterns.
// Patterns are ordered by detection sequence, not by confidence. Confidence
// is the maximum of the constituent pattern confidences.
//
// Invariant: Patterns empty implies Detected false and Reframing nil.
type DetectionResult struct {
	Detected   bool
	Patterns   []Pattern
	Confidence float64
	Reframing  *ReframingStrategy
}

// Dominant returns the highest-confidence pattern, or nil when none fired.
// Ties keep the earlier-detected pattern.
func (r DetectionResult) Dominant() *Pattern {
	if len(r.Patterns) == 0 {
		return nil
	}
	best := 0
	for i, p := range r.Patterns {
		if p.Confidence > r.Patterns[best].Confidence {
			best = i
		}
	}
	return &r.Patterns[best]
}

// Has reports whether the given pattern is among the matches.
func (r DetectionResult) Has(id PatternID) bool {
	for _, p := range r.Patterns {
		if p.ID == id {
			return true
		}
	}
	return false
}
