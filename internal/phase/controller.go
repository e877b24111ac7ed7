// Package phase implements the finite state machine that drives an OKR
// coaching conversation through discovery, refinement, key result
// discovery, validation, and completion. Decisions are pure functions of
// the inputs; the controller never performs I/O and fails closed (stays
// in the current phase) when upstream signals are missing or malformed.
package phase

import (
	"fmt"
	"math"
	"strings"

	"github.com/avelasco/stride/internal/domain"
	"github.com/avelasco/stride/internal/textscan"
)

// Config carries the product-tuned transition thresholds.
type Config struct {
	ObjectiveScoreThreshold int // refinement exit gate
	KRScoreThreshold        int // per-KR minimum in kr_discovery
	MaxRefinementIterations int // force-advance after this many rounds
	MinKeyResults           int
	MaxKeyResults           int
	MinDiscoveryAnswers     int // question-count alternative to a clean objective
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		ObjectiveScoreThreshold: 70,
		KRScoreThreshold:        60,
		MaxRefinementIterations: 3,
		MinKeyResults:           2,
		MaxKeyResults:           4,
		MinDiscoveryAnswers:     3,
	}
}

// Event names the cause of a phase transition.
type Event string

const (
	EventObjectiveEstablished Event = "objective_established"
	EventObjectiveAccepted    Event = "objective_accepted"
	EventKeyResultsAccepted   Event = "key_results_accepted"
	EventFinalApproval        Event = "final_approval"
)

type transitionKey struct {
	from  domain.Phase
	event Event
}

// transitions is the closed forward transition table. Backtracking is
// handled separately since its target depends on the classified reason.
var transitions = map[transitionKey]domain.Phase{
	{domain.PhaseDiscovery, EventObjectiveEstablished}:  domain.PhaseRefinement,
	{domain.PhaseRefinement, EventObjectiveAccepted}:    domain.PhaseKRDiscovery,
	{domain.PhaseKRDiscovery, EventKeyResultsAccepted}:  domain.PhaseValidation,
	{domain.PhaseValidation, EventFinalApproval}:        domain.PhaseCompleted,
}

// confirmationPhrases are matched case-insensitively as substrings; any
// hit counts as an explicit user confirmation for the current gate.
var confirmationPhrases = []string{
	"looks good", "let's finalize", "lets finalize", "approve",
	"approved", "confirm", "confirmed", "that works", "ship it",
	"lgtm", "finalize it", "i'm happy with", "im happy with",
	"sounds good", "yes, finalize", "sign off",
}

// stakeholderTerms and outcomeTerms establish the minimal business
// context needed to leave discovery.
var stakeholderTerms = []string{
	"customer", "customers", "user", "users", "team", "client",
	"clients", "stakeholder", "stakeholders", "leadership", "sales",
	"engineering", "marketing", "partners", "employees",
}

var outcomeTerms = []string{
	"increase", "reduce", "grow", "improve", "achieve", "revenue",
	"retention", "churn", "satisfaction", "outcome", "result",
	"conversion", "adoption", "market",
}

// Input is everything the controller consumes for one message.
type Input struct {
	Phase          domain.Phase
	Message        string
	Detection      domain.DetectionResult
	ObjectiveScore *domain.QualityScore
	KRScores       []domain.QualityScore
	History        []domain.Message
	State          domain.SessionState
	// Backtrack is the upstream classification of the message; the
	// controller trusts it but only acts on recognized reasons.
	Backtrack domain.BacktrackReason
}

// Decision is the controller's verdict for one message.
type Decision struct {
	NextPhase    domain.Phase
	Event        Event // empty when no forward transition fired
	Transitioned bool
	Backtracked  bool
	Guidance     string
	Suggestions  []string
	Diagnostics  []string
	State        domain.SessionState
}

// Controller evaluates phase transitions. Stateless; session state flows
// through Input and Decision.
type Controller struct {
	cfg Config
}

func New(cfg Config) *Controller {
	return &Controller{cfg: cfg}
}

// Evaluate decides whether the conversation stays in its phase or moves.
// An unrecognized phase is a caller contract violation and panics;
// missing or malformed quality signals merely keep the phase and surface
// a diagnostic.
func (c *Controller) Evaluate(in Input) Decision {
	if !in.Phase.Valid() {
		panic(fmt.Sprintf("phase: unknown phase %q", in.Phase))
	}

	d := Decision{
		NextPhase: in.Phase,
		State:     in.State,
	}
	d.State.Phase = in.Phase

	if in.Phase == domain.PhaseCompleted {
		d.Guidance = guidanceFor(domain.PhaseCompleted)
		return d
	}

	if diag := validateSignals(in); diag != "" {
		d.Diagnostics = append(d.Diagnostics, diag)
		d.Guidance = guidanceFor(in.Phase)
		d.Suggestions = c.suggestionsFor(in)
		return d
	}

	if target, ok := backtrackTarget(in.Phase, in.Backtrack); ok {
		d.NextPhase = target
		d.Backtracked = true
		d.State.Phase = target
		d.State.StreakCount = 0
		d.Guidance = backtrackGuidance(in.Backtrack)
		d.Suggestions = c.suggestionsFor(in)
		d.State.Progress = phaseProgress(target, 0)
		return d
	}

	msg := textscan.Normalize(in.Message)
	event, fired := c.evaluatePhase(in, msg, &d)
	if fired {
		next, ok := transitions[transitionKey{in.Phase, event}]
		if ok {
			d.NextPhase = next
			d.Event = event
			d.Transitioned = true
			d.State.Phase = next
			d.State.Iterations = 0
			d.State.StreakCount++
		}
	}

	d.Guidance = guidanceFor(d.NextPhase)
	d.Suggestions = c.suggestionsFor(in)
	d.State.Progress = phaseProgress(d.NextPhase, 0)
	return d
}

// evaluatePhase applies the per-phase preconditions and reports which
// event, if any, fired. It also performs the bookkeeping each phase does
// on every message (answer counting, iteration counting).
func (c *Controller) evaluatePhase(in Input, msg string, d *Decision) (Event, bool) {
	switch in.Phase {
	case domain.PhaseDiscovery:
		if msg != "" {
			d.State.AnsweredQuestions++
		}
		cleanObjective := objectiveLike(in) && !blockingPattern(in.Detection)
		enoughAnswers := d.State.AnsweredQuestions >= c.cfg.MinDiscoveryAnswers
		if (cleanObjective || enoughAnswers) && contextEstablished(in, msg) {
			return EventObjectiveEstablished, true
		}

	case domain.PhaseRefinement:
		d.State.Iterations++
		if isConfirmation(msg) {
			return EventObjectiveAccepted, true
		}
		if in.ObjectiveScore != nil && in.ObjectiveScore.Overall >= c.cfg.ObjectiveScoreThreshold {
			return EventObjectiveAccepted, true
		}
		if d.State.Iterations >= c.cfg.MaxRefinementIterations {
			d.Diagnostics = append(d.Diagnostics,
				fmt.Sprintf("advancing after %d refinement rounds without reaching the score gate", d.State.Iterations))
			return EventObjectiveAccepted, true
		}

	case domain.PhaseKRDiscovery:
		if isConfirmation(msg) {
			return EventKeyResultsAccepted, true
		}
		n := len(in.KRScores)
		if n >= c.cfg.MinKeyResults && n <= c.cfg.MaxKeyResults && allAbove(in.KRScores, c.cfg.KRScoreThreshold) {
			return EventKeyResultsAccepted, true
		}

	case domain.PhaseValidation:
		// Hard gate: only an explicit confirmation leaves validation.
		if isConfirmation(msg) {
			return EventFinalApproval, true
		}
	}
	return "", false
}

// validateSignals returns a diagnostic when an upstream result is
// malformed. A non-empty diagnostic means "fail closed".
func validateSignals(in Input) string {
	if badConfidence(in.Detection.Confidence) {
		return "detection result malformed; staying in current phase"
	}
	if in.Detection.Detected && len(in.Detection.Patterns) == 0 {
		return "detection result inconsistent; staying in current phase"
	}
	if in.ObjectiveScore != nil && badScore(*in.ObjectiveScore) {
		return "objective score malformed; staying in current phase"
	}
	for _, kr := range in.KRScores {
		if badScore(kr) {
			return "key result score malformed; staying in current phase"
		}
	}
	return ""
}

func badConfidence(c float64) bool {
	return math.IsNaN(c) || c < 0 || c > 1
}

func badScore(s domain.QualityScore) bool {
	if s.Overall < 0 || s.Overall > 100 || badConfidence(s.Confidence) {
		return true
	}
	for _, v := range s.Dimensions {
		if v < 0 || v > 100 {
			return true
		}
	}
	return false
}

func objectiveLike(in Input) bool {
	return textscan.WordCount(in.Message) >= 3
}

// blockingPattern treats a high-confidence anti-pattern as a reason to
// keep coaching in discovery.
func blockingPattern(det domain.DetectionResult) bool {
	for _, p := range det.Patterns {
		if p.Confidence >= 0.6 {
			return true
		}
	}
	return false
}

// contextEstablished requires a stakeholder mention plus outcome-ish
// language somewhere in the conversation so far.
func contextEstablished(in Input, msg string) bool {
	all := msg
	for _, m := range in.History {
		if m.Role == domain.RoleUser {
			all += " " + textscan.Normalize(m.Content)
		}
	}
	_, hasStakeholder := textscan.ContainsAny(all, stakeholderTerms)
	_, hasOutcome := textscan.ContainsAny(all, outcomeTerms)
	return hasStakeholder && hasOutcome
}

// IsConfirmation reports whether a message explicitly confirms the
// current gate. Matching is case-insensitive and substring-based.
func IsConfirmation(msg string) bool {
	return isConfirmation(textscan.Normalize(msg))
}

func isConfirmation(msg string) bool {
	if msg == "" {
		return false
	}
	for _, p := range confirmationPhrases {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

func allAbove(scores []domain.QualityScore, threshold int) bool {
	for _, s := range scores {
		if s.Overall < threshold {
			return false
		}
	}
	return len(scores) > 0
}

// Progress maps a phase plus intra-phase checkpoint completion to a
// [0,1] progress figure. Callers that track checkpoints recompute this
// after completing one.
func Progress(p domain.Phase, checkpointFraction float64) float64 {
	return phaseProgress(p, checkpointFraction)
}

// phaseProgress maps a phase plus intra-phase checkpoint completion to a
// [0,1] progress figure.
func phaseProgress(p domain.Phase, checkpointFraction float64) float64 {
	if p == domain.PhaseCompleted {
		return 1
	}
	const phases = 4.0
	frac := checkpointFraction
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return (float64(p.Order()) + frac) / phases
}

func guidanceFor(p domain.Phase) string {
	return phaseGuidance[p]
}

var phaseGuidance = map[domain.Phase]string{
	domain.PhaseDiscovery:   "Explore what matters most this cycle: who is affected, and what should change for them.",
	domain.PhaseRefinement:  "Sharpen the objective until it is an inspiring, outcome-focused single sentence.",
	domain.PhaseKRDiscovery: "Propose 2-4 measurable key results, each with a baseline, target, and deadline.",
	domain.PhaseValidation:  "Review the full OKR set. Say \"looks good\" or \"approve\" to finalize, or raise anything that feels off.",
	domain.PhaseCompleted:   "This OKR set is finalized. Start a new session to draft another.",
}

// suggestionsFor assembles phase-appropriate suggestions from the
// detection and scoring outputs.
func (c *Controller) suggestionsFor(in Input) []string {
	var out []string
	if in.Detection.Reframing != nil {
		out = append(out, in.Detection.Reframing.Questions...)
	}
	if in.ObjectiveScore != nil && in.Phase == domain.PhaseRefinement {
		out = append(out, in.ObjectiveScore.Improvements...)
	}
	if in.Phase == domain.PhaseKRDiscovery {
		for _, kr := range in.KRScores {
			out = append(out, kr.Improvements...)
		}
	}
	return out
}
