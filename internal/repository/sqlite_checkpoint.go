package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/avelasco/stride/internal/db"
	"github.com/avelasco/stride/internal/domain"
)

// SQLiteCheckpointRepo implements CheckpointRepo.
type SQLiteCheckpointRepo struct {
	db db.DBTX
}

func NewSQLiteCheckpointRepo(dbtx db.DBTX) *SQLiteCheckpointRepo {
	return &SQLiteCheckpointRepo{db: dbtx}
}

func (r *SQLiteCheckpointRepo) CreateBatch(ctx context.Context, cps []domain.Checkpoint) error {
	query := `INSERT INTO checkpoints (id, session_id, phase, sequence_order, is_complete,
		completion_criteria, completion_confidence, evidence, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, cp := range cps {
		criteria, err := toJSON(cp.CompletionCriteria)
		if err != nil {
			return err
		}
		evidence, err := toJSON(cp.EvidenceCollected)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx, query,
			cp.ID, cp.SessionID, string(cp.Phase), cp.SequenceOrder,
			boolToInt(cp.IsComplete), criteria, cp.CompletionConfidence, evidence,
			cp.CreatedAt.Format(time.RFC3339), cp.UpdatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("inserting checkpoint %s: %w", cp.ID, err)
		}
	}
	return nil
}

func (r *SQLiteCheckpointRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.Checkpoint, error) {
	query := `SELECT id, session_id, phase, sequence_order, is_complete,
		completion_criteria, completion_confidence, evidence, created_at, updated_at
		FROM checkpoints WHERE session_id = ? ORDER BY phase, sequence_order`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing checkpoints: %w", err)
	}
	defer rows.Close()

	var cps []domain.Checkpoint
	for rows.Next() {
		var (
			cp                   domain.Checkpoint
			phase                string
			isComplete           int
			criteria, evidence   string
			createdAt, updatedAt string
		)
		if err := rows.Scan(&cp.ID, &cp.SessionID, &phase, &cp.SequenceOrder,
			&isComplete, &criteria, &cp.CompletionConfidence, &evidence,
			&createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning checkpoint: %w", err)
		}
		cp.Phase = domain.Phase(phase)
		cp.IsComplete = intToBool(isComplete)
		if err := fromJSON(criteria, &cp.CompletionCriteria); err != nil {
			return nil, err
		}
		if err := fromJSON(evidence, &cp.EvidenceCollected); err != nil {
			return nil, err
		}
		if cp.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if cp.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		cps = append(cps, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating checkpoints: %w", err)
	}
	return cps, nil
}

// Update persists only the mutable completion fields; identity fields
// never change after creation.
func (r *SQLiteCheckpointRepo) Update(ctx context.Context, cp *domain.Checkpoint) error {
	evidence, err := toJSON(cp.EvidenceCollected)
	if err != nil {
		return err
	}
	query := `UPDATE checkpoints SET is_complete = ?, completion_confidence = ?,
		evidence = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		boolToInt(cp.IsComplete), cp.CompletionConfidence, evidence,
		cp.UpdatedAt.Format(time.RFC3339), cp.ID,
	)
	if err != nil {
		return fmt.Errorf("updating checkpoint: %w", err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("checkpoint %s: %w", cp.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteCheckpointRepo) DeleteByPhase(ctx context.Context, sessionID string, p domain.Phase) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM checkpoints WHERE session_id = ? AND phase = ?`, sessionID, string(p))
	if err != nil {
		return fmt.Errorf("deleting checkpoints for phase %s: %w", p, err)
	}
	return nil
}
