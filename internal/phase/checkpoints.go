package phase

import (
	"sort"
	"strings"
	"time"

	"github.com/avelasco/stride/internal/domain"
	"github.com/avelasco/stride/internal/textscan"
	"github.com/google/uuid"
)

// checkpointTemplates define the milestones created when each phase is
// entered. Sequence order follows slice order.
var checkpointTemplates = map[domain.Phase][][]string{
	domain.PhaseDiscovery: {
		{"A primary stakeholder or audience is named"},
		{"The desired change or outcome is articulated"},
		{"Business context (industry, function, or timeframe) is established"},
	},
	domain.PhaseRefinement: {
		{"Objective states an outcome, not an activity"},
		{"Objective passes the quality score gate or is explicitly accepted"},
	},
	domain.PhaseKRDiscovery: {
		{"At least two key results proposed"},
		{"Every key result has a metric and target"},
		{"Every key result is timebound"},
	},
	domain.PhaseValidation: {
		{"User has reviewed the complete OKR set"},
		{"User has explicitly approved"},
	},
}

// NewCheckpoints creates the checkpoint set for a freshly entered phase.
// Sequence orders are unique and strictly increasing; everything starts
// incomplete.
func NewCheckpoints(sessionID string, p domain.Phase, now time.Time) []domain.Checkpoint {
	templates := checkpointTemplates[p]
	out := make([]domain.Checkpoint, 0, len(templates))
	for i, criteria := range templates {
		out = append(out, domain.Checkpoint{
			ID:                 uuid.New().String(),
			SessionID:          sessionID,
			Phase:              p,
			SequenceOrder:      i + 1,
			IsComplete:         false,
			CompletionCriteria: append([]string(nil), criteria...),
			CreatedAt:          now,
			UpdatedAt:          now,
		})
	}
	return out
}

// Signals carries the per-message evidence checkpoint criteria are
// checked against: the raw message plus everything the current turn
// derived from it.
type Signals struct {
	Message        string
	Detection      domain.DetectionResult
	ObjectiveScore *domain.QualityScore
	KRScores       []domain.QualityScore
	Draft          domain.OKRDraft
	Context        domain.ObjectiveContext
	Event          Event // forward transition event, if one fired
}

// timeframeTerms satisfy the business-context checkpoint when the
// session context is still empty.
var timeframeTerms = []string{
	"quarter", "q1", "q2", "q3", "q4", "year", "half",
	"month", "months", "week", "weeks",
}

// timeboundGate is the minimum timebound dimension score for a key
// result to count as timebound.
const timeboundGate = 60

// CompleteNext marks complete the earliest incomplete checkpoint whose
// criterion the current turn actually satisfies, recording the message
// as evidence. At most one checkpoint can complete per message; a
// message that satisfies no pending criterion completes nothing.
func CompleteNext(cps []domain.Checkpoint, sig Signals, confidence float64, now time.Time) (completed *domain.Checkpoint, ok bool) {
	sort.SliceStable(cps, func(i, j int) bool {
		return cps[i].SequenceOrder < cps[j].SequenceOrder
	})
	for i := range cps {
		if cps[i].IsComplete {
			continue
		}
		if !criterionMet(cps[i].Phase, cps[i].SequenceOrder, sig) {
			return nil, false
		}
		cps[i].IsComplete = true
		cps[i].CompletionConfidence = confidence
		if sig.Message != "" {
			cps[i].EvidenceCollected = append(cps[i].EvidenceCollected, sig.Message)
		}
		cps[i].UpdatedAt = now
		return &cps[i], true
	}
	return nil, false
}

// criterionMet decides whether the turn's signals satisfy one
// checkpoint criterion. Indexed by phase and sequence order, mirroring
// checkpointTemplates. Unknown checkpoints fail closed.
func criterionMet(p domain.Phase, seq int, sig Signals) bool {
	msg := textscan.Normalize(sig.Message)
	switch p {
	case domain.PhaseDiscovery:
		switch seq {
		case 1:
			_, ok := textscan.ContainsAny(msg, stakeholderTerms)
			return ok
		case 2:
			_, ok := textscan.ContainsAny(msg, outcomeTerms)
			return ok
		case 3:
			if sig.Context != (domain.ObjectiveContext{}) {
				return true
			}
			_, ok := textscan.ContainsAny(msg, timeframeTerms)
			return ok
		}
	case domain.PhaseRefinement:
		switch seq {
		case 1:
			return sig.Draft.Objective != "" &&
				!sig.Detection.Has(domain.PatternActivityFocused)
		case 2:
			return sig.Event == EventObjectiveAccepted
		}
	case domain.PhaseKRDiscovery:
		switch seq {
		case 1:
			return len(sig.Draft.KeyResults) >= 2
		case 2:
			if len(sig.Draft.KeyResults) == 0 {
				return false
			}
			for _, kr := range sig.Draft.KeyResults {
				if !textscan.HasNumber(kr) {
					return false
				}
			}
			return true
		case 3:
			if len(sig.KRScores) == 0 {
				return false
			}
			for _, ks := range sig.KRScores {
				if ks.Dimensions[domain.DimTimebound] < timeboundGate {
					return false
				}
			}
			return true
		}
	case domain.PhaseValidation:
		switch seq {
		case 1:
			if isConfirmation(msg) {
				return true
			}
			return textscan.Overlap(msg, draftText(sig.Draft)) > 0
		case 2:
			return sig.Event == EventFinalApproval
		}
	}
	return false
}

func draftText(d domain.OKRDraft) string {
	parts := append([]string{d.Objective}, d.KeyResults...)
	return strings.Join(parts, " ")
}

// ResetBetween marks incomplete every checkpoint belonging to a phase at
// or after target and at or before current. Used when backtracking.
func ResetBetween(cps []domain.Checkpoint, target, current domain.Phase, now time.Time) {
	lo, hi := target.Order(), current.Order()
	for i := range cps {
		o := cps[i].Phase.Order()
		if o < lo || o > hi {
			continue
		}
		if cps[i].IsComplete || cps[i].CompletionConfidence != 0 {
			cps[i].IsComplete = false
			cps[i].CompletionConfidence = 0
			cps[i].EvidenceCollected = nil
			cps[i].UpdatedAt = now
		}
	}
}

// CompletionFraction reports the completed share of checkpoints in p.
func CompletionFraction(cps []domain.Checkpoint, p domain.Phase) float64 {
	total, done := 0, 0
	for _, cp := range cps {
		if cp.Phase != p {
			continue
		}
		total++
		if cp.IsComplete {
			done++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}
