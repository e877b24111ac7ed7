package coach

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avelasco/stride/internal/db"
	"github.com/avelasco/stride/internal/domain"
	"github.com/avelasco/stride/internal/phase"
	"github.com/avelasco/stride/internal/repository"
)

// ErrSessionCompleted is returned when a message arrives for a session
// whose OKR set is already finalized.
var ErrSessionCompleted = errors.New("session is completed")

// ErrSessionArchived is returned when a message arrives for an archived
// session.
var ErrSessionArchived = errors.New("session is archived")

// Replier generates the assistant's reply for a turn. Implementations may
// call an LLM; when nil or failing, the service falls back to the
// controller's guidance.
type Replier interface {
	Reply(ctx context.Context, s *domain.CoachSession, history []domain.Message, decision phase.Decision) (string, error)
}

// BacktrackClassifier decides whether a message asks to revisit earlier
// work, and why.
type BacktrackClassifier interface {
	Classify(ctx context.Context, message string, current domain.Phase) (domain.BacktrackReason, error)
}

// TurnResult is everything one HandleMessage call produced.
type TurnResult struct {
	Session             *domain.CoachSession
	Decision            phase.Decision
	Detection           domain.DetectionResult
	Reply               string
	CompletedCheckpoint *domain.Checkpoint
	Checkpoints         []domain.Checkpoint
}

// SessionService owns session lifecycle and per-message turns. All writes
// for one turn commit in a single transaction. Turns on the same session
// are serialized; concurrent turns on different sessions proceed freely.
type SessionService interface {
	Create(ctx context.Context, title string, octx domain.ObjectiveContext, scope domain.OrgScope) (*domain.CoachSession, error)
	GetByID(ctx context.Context, id string) (*domain.CoachSession, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.CoachSession, error)
	UpdateContext(ctx context.Context, id, title string, octx domain.ObjectiveContext, scope domain.OrgScope) (*domain.CoachSession, error)
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	History(ctx context.Context, sessionID string) ([]*domain.Message, error)
	Checkpoints(ctx context.Context, sessionID string) ([]domain.Checkpoint, error)
	HandleMessage(ctx context.Context, sessionID, content string) (*TurnResult, error)
}

type sessionService struct {
	engine      *Engine
	cfg         Config
	sessions    repository.SessionRepo
	messages    repository.MessageRepo
	checkpoints repository.CheckpointRepo
	uow         db.UnitOfWork
	classifier  BacktrackClassifier
	replier     Replier
	observer    TurnObserver
	now         func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option customizes a SessionService.
type Option func(*sessionService)

// WithReplier installs an LLM-backed reply generator.
func WithReplier(r Replier) Option {
	return func(s *sessionService) { s.replier = r }
}

// WithClassifier installs a backtrack classifier.
func WithClassifier(c BacktrackClassifier) Option {
	return func(s *sessionService) { s.classifier = c }
}

// WithObserver installs a turn observer.
func WithObserver(o TurnObserver) Option {
	return func(s *sessionService) { s.observer = o }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *sessionService) { s.now = now }
}

func NewSessionService(
	engine *Engine,
	cfg Config,
	sessions repository.SessionRepo,
	messages repository.MessageRepo,
	checkpoints repository.CheckpointRepo,
	uow db.UnitOfWork,
	opts ...Option,
) SessionService {
	s := &sessionService{
		engine:      engine,
		cfg:         cfg,
		sessions:    sessions,
		messages:    messages,
		checkpoints: checkpoints,
		uow:         uow,
		observer:    NoopTurnObserver{},
		now:         func() time.Time { return time.Now().UTC() },
		locks:       map[string]*sync.Mutex{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *sessionService) Create(ctx context.Context, title string, octx domain.ObjectiveContext, scope domain.OrgScope) (*domain.CoachSession, error) {
	now := s.now()
	session := &domain.CoachSession{
		ID:      uuid.New().String(),
		Title:   title,
		Status:  domain.SessionActive,
		Context: octx,
		Scope:   scope,
		State: domain.SessionState{
			Phase: domain.PhaseDiscovery,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	cps := phase.NewCheckpoints(session.ID, domain.PhaseDiscovery, now)

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteSessionRepo(tx).Create(ctx, session); err != nil {
			return err
		}
		return repository.NewSQLiteCheckpointRepo(tx).CreateBatch(ctx, cps)
	})
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return session, nil
}

func (s *sessionService) GetByID(ctx context.Context, id string) (*domain.CoachSession, error) {
	return s.sessions.GetByID(ctx, id)
}

func (s *sessionService) List(ctx context.Context, includeArchived bool) ([]*domain.CoachSession, error) {
	return s.sessions.List(ctx, includeArchived)
}

// UpdateContext replaces the session's title, objective context, and scope.
// It does not re-score the draft; scores refresh on the next turn.
func (s *sessionService) UpdateContext(ctx context.Context, id, title string, octx domain.ObjectiveContext, scope domain.OrgScope) (*domain.CoachSession, error) {
	unlock := s.lockSession(id)
	defer unlock()

	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if scope != "" && !domain.ValidOrgScopes[string(scope)] {
		return nil, fmt.Errorf("invalid scope %q", scope)
	}
	if title != "" {
		session.Title = title
	}
	session.Context = octx
	session.Scope = scope
	session.UpdatedAt = s.now().UTC()
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) Archive(ctx context.Context, id string) error {
	if _, err := s.sessions.GetByID(ctx, id); err != nil {
		return err
	}
	return s.sessions.Archive(ctx, id)
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

func (s *sessionService) History(ctx context.Context, sessionID string) ([]*domain.Message, error) {
	return s.messages.ListBySession(ctx, sessionID)
}

func (s *sessionService) Checkpoints(ctx context.Context, sessionID string) ([]domain.Checkpoint, error) {
	return s.checkpoints.ListBySession(ctx, sessionID)
}

// HandleMessage runs one coaching turn: analyze the message, let the
// controller decide, update checkpoints, generate a reply, and persist
// everything atomically.
func (s *sessionService) HandleMessage(ctx context.Context, sessionID, content string) (result *TurnResult, err error) {
	unlock := s.lockSession(sessionID)
	defer unlock()

	started := s.now()
	defer func() {
		s.observer.ObserveTurn(ctx, TurnEvent{
			Name:      "handle_message",
			SessionID: sessionID,
			Duration:  s.now().Sub(started),
			Success:   err == nil,
			Err:       err,
			StartedAt: started,
		})
	}()

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == domain.SessionArchived {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionArchived)
	}
	if session.State.Phase == domain.PhaseCompleted {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionCompleted)
	}

	recent, err := s.messages.ListRecent(ctx, sessionID, s.cfg.HistoryWindow)
	if err != nil {
		return nil, err
	}
	history := make([]domain.Message, 0, len(recent))
	for _, m := range recent {
		history = append(history, *m)
	}

	reason := s.classify(ctx, session, content)
	res := s.engine.Process(session, content, history, reason)

	now := s.now()
	oldPhase := session.State.Phase
	session.State = res.Decision.State
	session.Draft = res.Draft
	session.State.Suggestions = res.Decision.Suggestions
	session.State.ObjectiveScore = res.ObjectiveScore
	session.State.KRScores = res.KRScores
	session.UpdatedAt = now

	cps, err := s.checkpoints.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	completed, dirty, created := s.applyCheckpoints(sessionID, cps, res, oldPhase, content, session.Context, now)

	fraction := phase.CompletionFraction(append(cps, created...), session.State.Phase)
	session.State.Progress = phase.Progress(session.State.Phase, fraction)

	userMsg := &domain.Message{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      domain.RoleUser,
		Content:   content,
		Phase:     oldPhase,
		CreatedAt: now,
	}
	reply := s.reply(ctx, session, history, res.Decision)
	assistantMsg := &domain.Message{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      domain.RoleAssistant,
		Content:   reply,
		Phase:     session.State.Phase,
		CreatedAt: now,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txMessages := repository.NewSQLiteMessageRepo(tx)
		txCheckpoints := repository.NewSQLiteCheckpointRepo(tx)

		if err := txSessions.Update(ctx, session); err != nil {
			return err
		}
		if err := txMessages.Create(ctx, userMsg); err != nil {
			return err
		}
		if err := txMessages.Create(ctx, assistantMsg); err != nil {
			return err
		}
		for i := range dirty {
			if err := txCheckpoints.Update(ctx, &dirty[i]); err != nil {
				return err
			}
		}
		if len(created) > 0 {
			return txCheckpoints.CreateBatch(ctx, created)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("persisting turn: %w", err)
	}

	return &TurnResult{
		Session:             session,
		Decision:            res.Decision,
		Detection:           res.Detection,
		Reply:               reply,
		CompletedCheckpoint: completed,
		Checkpoints:         append(cps, created...),
	}, nil
}

// applyCheckpoints mutates cps in place per the decision and returns the
// checkpoint completed this turn (if any), the checkpoints needing an
// update, and freshly created checkpoints for a newly entered phase.
func (s *sessionService) applyCheckpoints(sessionID string, cps []domain.Checkpoint, res Result, oldPhase domain.Phase, message string, octx domain.ObjectiveContext, now time.Time) (*domain.Checkpoint, []domain.Checkpoint, []domain.Checkpoint) {
	d := res.Decision

	if d.Backtracked {
		wasComplete := map[string]bool{}
		for _, cp := range cps {
			wasComplete[cp.ID] = cp.IsComplete || cp.CompletionConfidence != 0
		}
		phase.ResetBetween(cps, d.NextPhase, oldPhase, now)
		var dirty []domain.Checkpoint
		for _, cp := range cps {
			if wasComplete[cp.ID] && !cp.IsComplete {
				dirty = append(dirty, cp)
			}
		}
		return nil, dirty, nil
	}

	var current []domain.Checkpoint
	idx := map[string]int{}
	for i, cp := range cps {
		if cp.Phase == oldPhase {
			idx[cp.ID] = i
			current = append(current, cp)
		}
	}
	sig := phase.Signals{
		Message:        message,
		Detection:      res.Detection,
		ObjectiveScore: res.ObjectiveScore,
		KRScores:       res.KRScores,
		Draft:          res.Draft,
		Context:        octx,
		Event:          d.Event,
	}
	completed, ok := phase.CompleteNext(current, sig, turnConfidence(res), now)
	var dirty []domain.Checkpoint
	if ok {
		cps[idx[completed.ID]] = *completed
		dirty = append(dirty, *completed)
	}

	var created []domain.Checkpoint
	if d.Transitioned && d.NextPhase != domain.PhaseCompleted && !hasPhase(cps, d.NextPhase) {
		created = phase.NewCheckpoints(sessionID, d.NextPhase, now)
	}
	return completed, dirty, created
}

func hasPhase(cps []domain.Checkpoint, p domain.Phase) bool {
	for _, cp := range cps {
		if cp.Phase == p {
			return true
		}
	}
	return false
}

// turnConfidence picks the confidence recorded on a completed checkpoint.
func turnConfidence(res Result) float64 {
	if res.ObjectiveScore != nil {
		return res.ObjectiveScore.Confidence
	}
	if res.Detection.Detected {
		return res.Detection.Confidence
	}
	return 0.5
}

func (s *sessionService) classify(ctx context.Context, session *domain.CoachSession, content string) domain.BacktrackReason {
	if s.classifier == nil || session.State.Phase == domain.PhaseDiscovery {
		return domain.BacktrackNone
	}
	reason, err := s.classifier.Classify(ctx, content, session.State.Phase)
	if err != nil {
		// Classification is advisory; a failure never blocks the turn.
		return domain.BacktrackNone
	}
	return reason
}

func (s *sessionService) reply(ctx context.Context, session *domain.CoachSession, history []domain.Message, d phase.Decision) string {
	if s.replier != nil {
		if reply, err := s.replier.Reply(ctx, session, history, d); err == nil && strings.TrimSpace(reply) != "" {
			return reply
		}
	}
	return FallbackReply(d)
}

// FallbackReply renders the controller's guidance and top suggestions as
// the assistant turn when no LLM is available.
func FallbackReply(d phase.Decision) string {
	var b strings.Builder
	b.WriteString(d.Guidance)
	const limit = 3
	for i, sug := range d.Suggestions {
		if i >= limit {
			break
		}
		b.WriteString("\n- ")
		b.WriteString(sug)
	}
	return b.String()
}

func (s *sessionService) lockSession(id string) func() {
	s.mu.Lock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	s.mu.Unlock()
	lock.Lock()
	return lock.Unlock
}
