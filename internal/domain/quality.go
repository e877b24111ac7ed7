package domain

// QualityScore is a multi-dimensional quality assessment of one objective
// or one key result. Dimension scores and Overall are integers in [0,100].
type QualityScore struct {
	Overall      int
	Dimensions   map[Dimension]int
	Feedback     []string
	Improvements []string
	Confidence   float64 // [0,1]: how many dimensions had real signal
}

// ObjectiveContext is the organizational context an objective is scored
// against. Empty fields fall back to neutral scoring defaults.
type ObjectiveContext struct {
	Industry  string
	Function  string
	Timeframe string
}

// OKRDraft is the working objective and key results assembled over a
// session. KeyResults holds the latest proposed KR texts in order.
type OKRDraft struct {
	Objective  string
	KeyResults []string
}
