package domain

import "time"

// CoachSession is one guided OKR conversation.
type CoachSession struct {
	ID        string
	Title     string
	Status    SessionStatus
	Context   ObjectiveContext
	Scope     OrgScope // empty when the user has not set an altitude
	State     SessionState
	Draft     OKRDraft
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionState is the phase-controller-owned portion of a session. It is
// mutated only by the controller and persisted between messages.
type SessionState struct {
	Phase          Phase
	ObjectiveScore *QualityScore
	KRScores       []QualityScore
	Suggestions    []string
	Progress       float64 // [0,1]
	// Iterations counts refinement rounds; the controller force-advances
	// after the configured maximum.
	Iterations int
	// AnsweredQuestions counts discovery questions the user has addressed.
	AnsweredQuestions int
	// StreakCount counts forward phase transitions since the last
	// backtrack. Reset to zero on backtracking.
	StreakCount int
}

// Message is one turn of the conversation.
type Message struct {
	ID        string
	SessionID string
	Role      MessageRole
	Content   string
	Phase     Phase // phase the session was in when the message arrived
	CreatedAt time.Time
}

// Checkpoint is a phase-scoped completion milestone. Identity fields are
// immutable once created; only the completion fields mutate.
type Checkpoint struct {
	ID                   string
	SessionID            string
	Phase                Phase
	SequenceOrder        int
	IsComplete           bool
	CompletionCriteria   []string
	CompletionConfidence float64
	EvidenceCollected    []string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
