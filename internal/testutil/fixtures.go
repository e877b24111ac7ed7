package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/avelasco/stride/internal/domain"
)

// NewTestSession builds a valid discovery-phase session. Options mutate the
// session before it is returned.
func NewTestSession(opts ...func(*domain.CoachSession)) *domain.CoachSession {
	now := time.Now().UTC().Truncate(time.Second)
	s := &domain.CoachSession{
		ID:     uuid.NewString(),
		Title:  "Q3 planning",
		Status: domain.SessionActive,
		Context: domain.ObjectiveContext{
			Industry:  "saas",
			Function:  "engineering",
			Timeframe: "Q3 2026",
		},
		Scope: domain.ScopeTeam,
		State: domain.SessionState{
			Phase: domain.PhaseDiscovery,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithPhase sets the session's current phase.
func WithPhase(p domain.Phase) func(*domain.CoachSession) {
	return func(s *domain.CoachSession) { s.State.Phase = p }
}

// WithStatus sets the session status.
func WithStatus(st domain.SessionStatus) func(*domain.CoachSession) {
	return func(s *domain.CoachSession) { s.Status = st }
}

// WithDraft sets the working OKR draft.
func WithDraft(d domain.OKRDraft) func(*domain.CoachSession) {
	return func(s *domain.CoachSession) { s.Draft = d }
}

// WithObjectiveScore attaches a quality score to the session state.
func WithObjectiveScore(score domain.QualityScore) func(*domain.CoachSession) {
	return func(s *domain.CoachSession) { s.State.ObjectiveScore = &score }
}

// NewTestMessage builds a user message for the given session.
func NewTestMessage(sessionID string, opts ...func(*domain.Message)) *domain.Message {
	m := &domain.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      domain.RoleUser,
		Content:   "I want to improve onboarding this quarter",
		Phase:     domain.PhaseDiscovery,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithRole sets the message role.
func WithRole(r domain.MessageRole) func(*domain.Message) {
	return func(m *domain.Message) { m.Role = r }
}

// WithContent sets the message content.
func WithContent(c string) func(*domain.Message) {
	return func(m *domain.Message) { m.Content = c }
}

// NewTestCheckpoint builds an incomplete checkpoint for the given session.
func NewTestCheckpoint(sessionID string, opts ...func(*domain.Checkpoint)) *domain.Checkpoint {
	now := time.Now().UTC().Truncate(time.Second)
	c := &domain.Checkpoint{
		ID:                 uuid.NewString(),
		SessionID:          sessionID,
		Phase:              domain.PhaseDiscovery,
		SequenceOrder:      1,
		CompletionCriteria: []string{"desired outcome named"},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithSequence sets the checkpoint's sequence order.
func WithSequence(n int) func(*domain.Checkpoint) {
	return func(c *domain.Checkpoint) { c.SequenceOrder = n }
}

// Completed marks the checkpoint complete with the given confidence.
func Completed(confidence float64) func(*domain.Checkpoint) {
	return func(c *domain.Checkpoint) {
		c.IsComplete = true
		c.CompletionConfidence = confidence
	}
}
