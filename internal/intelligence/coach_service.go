package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/avelasco/stride/internal/coach"
	"github.com/avelasco/stride/internal/domain"
	"github.com/avelasco/stride/internal/llm"
	"github.com/avelasco/stride/internal/phase"
)

// CoachService generates conversational coaching replies through the LLM,
// falling back to deterministic phase guidance when the model is disabled
// or unavailable. The whole app stays usable with no LLM running.
type CoachService struct {
	client  llm.Client
	enabled bool
}

var _ coach.Replier = (*CoachService)(nil)

// NewCoachService creates a CoachService. A nil client or enabled=false
// yields deterministic replies only.
func NewCoachService(client llm.Client, enabled bool) *CoachService {
	return &CoachService{client: client, enabled: enabled}
}

func (s *CoachService) Reply(ctx context.Context, session *domain.CoachSession, history []domain.Message, decision phase.Decision) (string, error) {
	if !s.enabled || s.client == nil {
		return FallbackReply(decision), nil
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskCoachReply,
		SystemPrompt: coachSystemPrompt,
		UserPrompt:   buildReplyPrompt(session, history, decision),
	})
	if err != nil {
		// The reply is best-effort; a model failure never blocks a turn.
		return FallbackReply(decision), nil
	}
	reply := strings.TrimSpace(resp.Text)
	if reply == "" {
		return FallbackReply(decision), nil
	}
	return reply, nil
}

// Summarize produces a closing summary of a finished session.
func (s *CoachService) Summarize(ctx context.Context, session *domain.CoachSession) (string, error) {
	if !s.enabled || s.client == nil {
		return FallbackSummary(session), nil
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSummary,
		SystemPrompt: summarySystemPrompt,
		UserPrompt:   buildSummaryPrompt(session),
	})
	if err != nil {
		return FallbackSummary(session), nil
	}
	summary := strings.TrimSpace(resp.Text)
	if summary == "" {
		return FallbackSummary(session), nil
	}
	return summary, nil
}

func buildReplyPrompt(session *domain.CoachSession, history []domain.Message, decision phase.Decision) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Phase: %s\n", decision.NextPhase)
	if decision.Transitioned {
		fmt.Fprintf(&b, "The conversation just advanced from %s.\n", session.State.Phase)
	}
	if decision.Backtracked {
		fmt.Fprintf(&b, "The conversation just moved back to %s to revisit earlier work.\n", decision.NextPhase)
	}

	if session.Draft.Objective != "" {
		fmt.Fprintf(&b, "\nDraft objective: %s\n", session.Draft.Objective)
	}
	for i, kr := range session.Draft.KeyResults {
		fmt.Fprintf(&b, "Key result %d: %s\n", i+1, kr)
	}

	if score := session.State.ObjectiveScore; score != nil {
		fmt.Fprintf(&b, "\nObjective quality: %d/100\n", score.Overall)
		for dim, v := range score.Dimensions {
			fmt.Fprintf(&b, "- %s: %d\n", dim, v)
		}
	}

	if len(decision.Suggestions) > 0 {
		b.WriteString("\nCoaching suggestions:\n")
		for _, s := range decision.Suggestions {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	if decision.Guidance != "" {
		fmt.Fprintf(&b, "\nEngine guidance: %s\n", decision.Guidance)
	}

	if len(history) > 0 {
		b.WriteString("\nRecent conversation:\n")
		for _, m := range history {
			fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
		}
	}

	return b.String()
}

func buildSummaryPrompt(session *domain.CoachSession) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Objective: %s\n", session.Draft.Objective)
	for i, kr := range session.Draft.KeyResults {
		fmt.Fprintf(&b, "Key result %d: %s\n", i+1, kr)
	}
	if score := session.State.ObjectiveScore; score != nil {
		fmt.Fprintf(&b, "Objective quality score: %d/100\n", score.Overall)
	}
	for i, kr := range session.State.KRScores {
		fmt.Fprintf(&b, "Key result %d score: %d/100\n", i+1, kr.Overall)
	}
	return b.String()
}
