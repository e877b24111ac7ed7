package intelligence

import (
	"fmt"
	"strings"

	"github.com/avelasco/stride/internal/coach"
	"github.com/avelasco/stride/internal/domain"
	"github.com/avelasco/stride/internal/phase"
	"github.com/avelasco/stride/internal/textscan"
)

// FallbackReply renders a deterministic coaching reply from the
// controller's decision: the base guidance-and-suggestions rendering,
// with the turn's diagnostics appended.
func FallbackReply(d phase.Decision) string {
	var b strings.Builder
	b.WriteString(coach.FallbackReply(d))
	for _, diag := range d.Diagnostics {
		b.WriteString("\n(")
		b.WriteString(diag)
		b.WriteString(")")
	}
	return b.String()
}

// FallbackSummary renders a deterministic closing summary.
func FallbackSummary(s *domain.CoachSession) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Objective: %s\n", s.Draft.Objective)
	for i, kr := range s.Draft.KeyResults {
		fmt.Fprintf(&b, "KR%d: %s\n", i+1, kr)
	}
	if score := s.State.ObjectiveScore; score != nil {
		fmt.Fprintf(&b, "Objective quality: %d/100", score.Overall)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Backtrack cue vocabularies for the heuristic classifier. Scope cues
// win over the broader insight cues when both appear.
var (
	scopeChangeCues = []string{
		"company goal", "team goal", "whole company", "entire company",
		"company-wide", "department goal", "wrong level", "not just my team",
		"bigger than my team", "this should be strategic",
	}
	missedDetailCues = []string{
		"we forgot", "i forgot", "we missed", "i missed", "didn't mention",
		"didnt mention", "left out", "one thing we skipped", "going back to add",
	}
	newInsightCues = []string{
		"actually", "on second thought", "i realize", "i realized",
		"the real problem", "rethink", "go back", "start over",
	}
)

// HeuristicBacktrack classifies a message with keyword cues only.
func HeuristicBacktrack(message string) domain.BacktrackReason {
	msg := textscan.Normalize(message)
	if msg == "" {
		return domain.BacktrackNone
	}
	if _, ok := textscan.ContainsAny(msg, scopeChangeCues); ok {
		return domain.BacktrackScopeChange
	}
	if _, ok := textscan.ContainsAny(msg, missedDetailCues); ok {
		return domain.BacktrackMissedDetail
	}
	if _, ok := textscan.ContainsAny(msg, newInsightCues); ok {
		return domain.BacktrackNewInsight
	}
	return domain.BacktrackNone
}
