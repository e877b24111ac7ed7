package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avelasco/stride/internal/db"
	"github.com/avelasco/stride/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo over a DBTX, so the same code
// serves both direct and transactional access.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(dbtx db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: dbtx}
}

const sessionColumns = `id, title, status, industry, function, timeframe, scope,
	phase, objective, key_results, objective_score, kr_scores, suggestions,
	progress, iterations, answered_questions, streak_count, created_at, updated_at`

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.CoachSession) error {
	keyResults, err := toJSON(s.Draft.KeyResults)
	if err != nil {
		return err
	}
	objScore, err := objectiveScoreJSON(s.State.ObjectiveScore)
	if err != nil {
		return err
	}
	krScores, err := toJSON(s.State.KRScores)
	if err != nil {
		return err
	}
	suggestions, err := toJSON(s.State.Suggestions)
	if err != nil {
		return err
	}

	query := `INSERT INTO coach_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID, s.Title, string(s.Status),
		s.Context.Industry, s.Context.Function, s.Context.Timeframe,
		string(s.Scope), string(s.State.Phase), s.Draft.Objective,
		keyResults, objScore, krScores, suggestions,
		s.State.Progress, s.State.Iterations, s.State.AnsweredQuestions, s.State.StreakCount,
		s.CreatedAt.Format(time.RFC3339), s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting coach session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.CoachSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM coach_sessions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	s, err := scanSession(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("coach session %s: %w", id, ErrNotFound)
	}
	return s, err
}

func (r *SQLiteSessionRepo) List(ctx context.Context, includeArchived bool) ([]*domain.CoachSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM coach_sessions`
	if !includeArchived {
		query += ` WHERE status = 'active'`
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing coach sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.CoachSession
	for rows.Next() {
		s, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating coach sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteSessionRepo) Update(ctx context.Context, s *domain.CoachSession) error {
	keyResults, err := toJSON(s.Draft.KeyResults)
	if err != nil {
		return err
	}
	objScore, err := objectiveScoreJSON(s.State.ObjectiveScore)
	if err != nil {
		return err
	}
	krScores, err := toJSON(s.State.KRScores)
	if err != nil {
		return err
	}
	suggestions, err := toJSON(s.State.Suggestions)
	if err != nil {
		return err
	}

	query := `UPDATE coach_sessions SET
		title = ?, status = ?, industry = ?, function = ?, timeframe = ?, scope = ?,
		phase = ?, objective = ?, key_results = ?, objective_score = ?, kr_scores = ?,
		suggestions = ?, progress = ?, iterations = ?, answered_questions = ?,
		streak_count = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Title, string(s.Status),
		s.Context.Industry, s.Context.Function, s.Context.Timeframe, string(s.Scope),
		string(s.State.Phase), s.Draft.Objective, keyResults, objScore, krScores,
		suggestions, s.State.Progress, s.State.Iterations, s.State.AnsweredQuestions,
		s.State.StreakCount, s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating coach session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("coach session %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRepo) Archive(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE coach_sessions SET status = 'archived', updated_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("archiving coach session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM coach_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting coach session: %w", err)
	}
	return nil
}

func objectiveScoreJSON(s *domain.QualityScore) (any, error) {
	if s == nil {
		return nil, nil
	}
	return toJSON(s)
}

// scanSession decodes one row regardless of whether it came from a
// *sql.Row or *sql.Rows.
func scanSession(scan func(...any) error) (*domain.CoachSession, error) {
	var (
		s                              domain.CoachSession
		status, scope, phase           string
		keyResults, krScores, suggs    string
		objScore                       sql.NullString
		createdAt, updatedAt           string
	)
	err := scan(
		&s.ID, &s.Title, &status,
		&s.Context.Industry, &s.Context.Function, &s.Context.Timeframe, &scope,
		&phase, &s.Draft.Objective, &keyResults, &objScore, &krScores, &suggs,
		&s.State.Progress, &s.State.Iterations, &s.State.AnsweredQuestions, &s.State.StreakCount,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning coach session: %w", err)
	}

	s.Status = domain.SessionStatus(status)
	s.Scope = domain.OrgScope(scope)
	s.State.Phase = domain.Phase(phase)

	if err := fromJSON(keyResults, &s.Draft.KeyResults); err != nil {
		return nil, err
	}
	if objScore.Valid {
		var qs domain.QualityScore
		if err := fromJSON(objScore.String, &qs); err != nil {
			return nil, err
		}
		s.State.ObjectiveScore = &qs
	}
	if err := fromJSON(krScores, &s.State.KRScores); err != nil {
		return nil, err
	}
	if err := fromJSON(suggs, &s.State.Suggestions); err != nil {
		return nil, err
	}

	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
