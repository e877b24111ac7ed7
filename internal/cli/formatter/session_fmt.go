package formatter

import (
	"fmt"
	"strings"

	"github.com/avelasco/stride/internal/domain"
)

// FormatSessionList renders sessions as a table.
func FormatSessionList(sessions []*domain.CoachSession) string {
	if len(sessions) == 0 {
		return "No sessions found."
	}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			TruncID(s.ID),
			Truncate(s.Title, 32),
			StatusPill(s.Status),
			PhasePill(s.State.Phase),
			RenderProgress(s.State.Progress, 12),
			HumanTimestamp(s.UpdatedAt),
		})
	}
	return RenderTable([]string{"ID", "TITLE", "STATUS", "PHASE", "PROGRESS", "UPDATED"}, rows)
}

// FormatSessionDetail renders one session with its draft and scores.
func FormatSessionDetail(s *domain.CoachSession, checkpoints []domain.Checkpoint) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s  %s\n", StyleBold.Render(s.Title), StatusPill(s.Status), PhasePill(s.State.Phase))
	fmt.Fprintf(&b, "%s\n", RenderProgress(s.State.Progress, 24))

	if s.Context != (domain.ObjectiveContext{}) || s.Scope != "" {
		b.WriteString("\n")
		if s.Context.Industry != "" {
			fmt.Fprintf(&b, "%s %s\n", Dim("industry: "), s.Context.Industry)
		}
		if s.Context.Function != "" {
			fmt.Fprintf(&b, "%s %s\n", Dim("function: "), s.Context.Function)
		}
		if s.Context.Timeframe != "" {
			fmt.Fprintf(&b, "%s %s\n", Dim("timeframe:"), s.Context.Timeframe)
		}
		if s.Scope != "" {
			fmt.Fprintf(&b, "%s %s\n", Dim("scope:    "), string(s.Scope))
		}
	}

	if s.Draft.Objective != "" {
		fmt.Fprintf(&b, "\n%s\n  %s", StyleHeader.Render("OBJECTIVE"), s.Draft.Objective)
		if score := s.State.ObjectiveScore; score != nil {
			fmt.Fprintf(&b, "  %s", ScoreStyle(score.Overall).Render(fmt.Sprintf("(%d/100)", score.Overall)))
		}
		b.WriteString("\n")
	}
	if len(s.Draft.KeyResults) > 0 {
		fmt.Fprintf(&b, "\n%s\n", StyleHeader.Render("KEY RESULTS"))
		for i, kr := range s.Draft.KeyResults {
			fmt.Fprintf(&b, "  %d. %s", i+1, kr)
			if i < len(s.State.KRScores) {
				v := s.State.KRScores[i].Overall
				fmt.Fprintf(&b, "  %s", ScoreStyle(v).Render(fmt.Sprintf("(%d/100)", v)))
			}
			b.WriteString("\n")
		}
	}

	if len(checkpoints) > 0 {
		fmt.Fprintf(&b, "\n%s\n", StyleHeader.Render("CHECKPOINTS"))
		for _, cp := range checkpoints {
			mark := StyleDim.Render("○")
			if cp.IsComplete {
				mark = StyleGreen.Render("✔")
			}
			criteria := ""
			if len(cp.CompletionCriteria) > 0 {
				criteria = cp.CompletionCriteria[0]
			}
			fmt.Fprintf(&b, "  %s %s %s\n", mark, PhasePill(cp.Phase), criteria)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
