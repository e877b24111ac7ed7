package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avelasco/stride/internal/db"
	"github.com/avelasco/stride/internal/domain"
)

// SQLiteMessageRepo implements MessageRepo.
type SQLiteMessageRepo struct {
	db db.DBTX
}

func NewSQLiteMessageRepo(dbtx db.DBTX) *SQLiteMessageRepo {
	return &SQLiteMessageRepo{db: dbtx}
}

func (r *SQLiteMessageRepo) Create(ctx context.Context, m *domain.Message) error {
	query := `INSERT INTO messages (id, session_id, role, content, phase, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.SessionID, string(m.Role), m.Content, string(m.Phase),
		m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	return nil
}

func (r *SQLiteMessageRepo) ListBySession(ctx context.Context, sessionID string) ([]*domain.Message, error) {
	// rowid breaks ties within one second, preserving insertion order.
	query := `SELECT id, session_id, role, content, phase, created_at
		FROM messages WHERE session_id = ? ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()
	return r.scanMessages(rows)
}

// ListRecent returns the newest limit messages in chronological order.
func (r *SQLiteMessageRepo) ListRecent(ctx context.Context, sessionID string, limit int) ([]*domain.Message, error) {
	query := `SELECT id, session_id, role, content, phase, created_at FROM (
			SELECT rowid AS rn, id, session_id, role, content, phase, created_at
			FROM messages WHERE session_id = ?
			ORDER BY created_at DESC, rowid DESC LIMIT ?
		) ORDER BY created_at, rn`
	rows, err := r.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent messages: %w", err)
	}
	defer rows.Close()
	return r.scanMessages(rows)
}

func (r *SQLiteMessageRepo) scanMessages(rows *sql.Rows) ([]*domain.Message, error) {
	var msgs []*domain.Message
	for rows.Next() {
		var (
			m           domain.Message
			role, phase string
			createdAt   string
		)
		if err := rows.Scan(&m.ID, &m.SessionID, &role, &m.Content, &phase, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		m.Role = domain.MessageRole(role)
		m.Phase = domain.Phase(phase)
		var err error
		if m.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}
	return msgs, nil
}
