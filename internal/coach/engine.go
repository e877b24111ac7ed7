// Package coach orchestrates the detector, scorer, and phase controller
// into per-message turns and owns session persistence.
package coach

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/avelasco/stride/internal/detector"
	"github.com/avelasco/stride/internal/domain"
	"github.com/avelasco/stride/internal/phase"
	"github.com/avelasco/stride/internal/scorer"
	"github.com/avelasco/stride/internal/textscan"
)

// Engine runs the analysis pipeline for one message: detect anti-patterns,
// score OKR-like content, then let the phase controller decide. It holds
// no session state; everything flows through arguments and results.
type Engine struct {
	detector   *detector.Detector
	scorer     *scorer.Scorer
	controller *phase.Controller
	cfg        Config

	// Detection is deterministic per text, so results are memoized.
	detections *lru.Cache[string, domain.DetectionResult]
}

// Result is one turn's analysis output.
type Result struct {
	Decision  phase.Decision
	Detection domain.DetectionResult
	// Draft reflects any objective or key result content extracted from
	// the message. The caller persists it alongside the decision state.
	Draft          domain.OKRDraft
	ObjectiveScore *domain.QualityScore
	KRScores       []domain.QualityScore
}

func NewEngine(cfg Config) (*Engine, error) {
	cache, err := lru.New[string, domain.DetectionResult](cfg.DetectionCache)
	if err != nil {
		return nil, err
	}
	return &Engine{
		detector:   detector.New(),
		scorer:     scorer.New(cfg.ObjectiveWordCap),
		controller: phase.New(cfg.Phase),
		cfg:        cfg,
		detections: cache,
	}, nil
}

// Detect runs anti-pattern detection, memoizing by normalized text.
func (e *Engine) Detect(text string) domain.DetectionResult {
	key := textscan.Normalize(text)
	if res, ok := e.detections.Get(key); ok {
		return res
	}
	res := e.detector.Detect(text)
	e.detections.Add(key, res)
	return res
}

// ScoreObjective scores text as an objective draft.
func (e *Engine) ScoreObjective(text string, ctx domain.ObjectiveContext, scope domain.OrgScope) domain.QualityScore {
	return e.scorer.ScoreObjective(text, ctx, scope)
}

// ScoreKeyResult scores text as a key result against its parent objective.
func (e *Engine) ScoreKeyResult(text, parentObjective string) domain.QualityScore {
	return e.scorer.ScoreKeyResult(text, parentObjective)
}

// Process analyzes one user message in the context of a session and
// returns the controller's decision plus the updated draft. It does not
// mutate the session.
func (e *Engine) Process(s *domain.CoachSession, message string, history []domain.Message, backtrack domain.BacktrackReason) Result {
	detection := e.Detect(message)
	draft := cloneDraft(s.Draft)

	var objScore *domain.QualityScore
	var krScores []domain.QualityScore

	// A message that asks to revisit earlier work is not new draft
	// content.
	capture := backtrack == "" || backtrack == domain.BacktrackNone

	switch s.State.Phase {
	case domain.PhaseDiscovery, domain.PhaseRefinement:
		if capture && objectiveCandidate(message) {
			draft.Objective = strings.TrimSpace(message)
		}
		if draft.Objective != "" {
			score := e.scorer.ScoreObjective(draft.Objective, s.Context, s.Scope)
			objScore = &score
		}

	case domain.PhaseKRDiscovery:
		if capture {
			for _, cand := range keyResultCandidates(message) {
				if !containsString(draft.KeyResults, cand) {
					draft.KeyResults = append(draft.KeyResults, cand)
				}
			}
		}
		for _, kr := range draft.KeyResults {
			krScores = append(krScores, e.scorer.ScoreKeyResult(kr, draft.Objective))
		}
		if draft.Objective != "" {
			score := e.scorer.ScoreObjective(draft.Objective, s.Context, s.Scope)
			objScore = &score
		}

	default:
		// Validation and completed phases review existing content only.
		if draft.Objective != "" {
			score := e.scorer.ScoreObjective(draft.Objective, s.Context, s.Scope)
			objScore = &score
		}
		for _, kr := range draft.KeyResults {
			krScores = append(krScores, e.scorer.ScoreKeyResult(kr, draft.Objective))
		}
	}

	decision := e.controller.Evaluate(phase.Input{
		Phase:          s.State.Phase,
		Message:        message,
		Detection:      detection,
		ObjectiveScore: objScore,
		KRScores:       krScores,
		History:        history,
		State:          s.State,
		Backtrack:      backtrack,
	})

	return Result{
		Decision:       decision,
		Detection:      detection,
		Draft:          draft,
		ObjectiveScore: objScore,
		KRScores:       krScores,
	}
}

// objectiveCandidate reports whether a message plausibly states an
// objective rather than a question or an acknowledgment.
func objectiveCandidate(message string) bool {
	msg := strings.TrimSpace(message)
	if strings.HasSuffix(msg, "?") {
		return false
	}
	if phase.IsConfirmation(msg) {
		return false
	}
	return textscan.WordCount(msg) >= 4
}

// keyResultCandidates splits a message into key result statements. Lines
// and semicolon-separated clauses count when they carry a number; a KR
// without one would score zero on quantification anyway.
func keyResultCandidates(message string) []string {
	var out []string
	for _, line := range strings.FieldsFunc(message, func(r rune) bool {
		return r == '\n' || r == ';'
	}) {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*• \t"))
		if line == "" {
			continue
		}
		if textscan.WordCount(line) >= 3 && textscan.HasNumber(line) {
			out = append(out, line)
		}
	}
	return out
}

func cloneDraft(d domain.OKRDraft) domain.OKRDraft {
	out := d
	out.KeyResults = append([]string(nil), d.KeyResults...)
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
