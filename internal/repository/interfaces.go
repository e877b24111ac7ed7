package repository

import (
	"context"
	"errors"

	"github.com/avelasco/stride/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

type SessionRepo interface {
	Create(ctx context.Context, s *domain.CoachSession) error
	GetByID(ctx context.Context, id string) (*domain.CoachSession, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.CoachSession, error)
	Update(ctx context.Context, s *domain.CoachSession) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type MessageRepo interface {
	Create(ctx context.Context, m *domain.Message) error
	ListBySession(ctx context.Context, sessionID string) ([]*domain.Message, error)
	ListRecent(ctx context.Context, sessionID string, limit int) ([]*domain.Message, error)
}

type CheckpointRepo interface {
	CreateBatch(ctx context.Context, cps []domain.Checkpoint) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.Checkpoint, error)
	Update(ctx context.Context, cp *domain.Checkpoint) error
	DeleteByPhase(ctx context.Context, sessionID string, p domain.Phase) error
}
