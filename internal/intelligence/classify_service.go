package intelligence

import (
	"context"
	"fmt"

	"github.com/avelasco/stride/internal/coach"
	"github.com/avelasco/stride/internal/domain"
	"github.com/avelasco/stride/internal/llm"
)

// classifyConfidenceThreshold is the minimum model confidence for acting
// on a backtrack classification. Below it the turn proceeds normally.
const classifyConfidenceThreshold = 0.6

// ClassifyService decides whether a user message asks to revisit earlier
// work. LLM-backed with a keyword heuristic fallback.
type ClassifyService struct {
	client  llm.Client
	enabled bool
}

var _ coach.BacktrackClassifier = (*ClassifyService)(nil)

// NewClassifyService creates a ClassifyService. A nil client or
// enabled=false uses only the keyword heuristic.
func NewClassifyService(client llm.Client, enabled bool) *ClassifyService {
	return &ClassifyService{client: client, enabled: enabled}
}

// classifyResponse is the JSON structure expected from the model.
type classifyResponse struct {
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

func validateClassify(r classifyResponse) error {
	if err := llm.EnumField("reason", r.Reason,
		string(domain.BacktrackNewInsight), string(domain.BacktrackMissedDetail),
		string(domain.BacktrackScopeChange), string(domain.BacktrackNone)); err != nil {
		return err
	}
	return llm.UnitInterval("confidence", r.Confidence)
}

func (s *ClassifyService) Classify(ctx context.Context, message string, current domain.Phase) (domain.BacktrackReason, error) {
	if !s.enabled || s.client == nil {
		return HeuristicBacktrack(message), nil
	}

	prompt := fmt.Sprintf("Current phase: %s\nUser message: %s", current, message)
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskClassify,
		SystemPrompt: classifySystemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		return HeuristicBacktrack(message), nil
	}

	parsed, err := llm.ExtractJSON[classifyResponse](resp.Text, validateClassify)
	if err != nil {
		return HeuristicBacktrack(message), nil
	}
	if parsed.Confidence < classifyConfidenceThreshold {
		return domain.BacktrackNone, nil
	}
	return domain.BacktrackReason(parsed.Reason), nil
}
