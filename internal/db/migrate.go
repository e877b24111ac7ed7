package db

import (
	"database/sql"
	"fmt"
)

// migrations are idempotent DDL statements run in order on every open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS coach_sessions (
		id               TEXT PRIMARY KEY,
		title            TEXT NOT NULL,
		status           TEXT NOT NULL DEFAULT 'active'
		                 CHECK(status IN ('active','archived')),
		industry         TEXT NOT NULL DEFAULT '',
		function         TEXT NOT NULL DEFAULT '',
		timeframe        TEXT NOT NULL DEFAULT '',
		scope            TEXT NOT NULL DEFAULT '',
		phase            TEXT NOT NULL DEFAULT 'discovery'
		                 CHECK(phase IN ('discovery','refinement','kr_discovery','validation','completed')),
		objective        TEXT NOT NULL DEFAULT '',
		key_results      TEXT NOT NULL DEFAULT '[]',
		objective_score  TEXT,
		kr_scores        TEXT NOT NULL DEFAULT '[]',
		suggestions      TEXT NOT NULL DEFAULT '[]',
		progress         REAL NOT NULL DEFAULT 0,
		iterations       INTEGER NOT NULL DEFAULT 0,
		answered_questions INTEGER NOT NULL DEFAULT 0,
		streak_count     INTEGER NOT NULL DEFAULT 0,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS messages (
		id         TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES coach_sessions(id) ON DELETE CASCADE,
		role       TEXT NOT NULL CHECK(role IN ('user','assistant')),
		content    TEXT NOT NULL,
		phase      TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS checkpoints (
		id                    TEXT PRIMARY KEY,
		session_id            TEXT NOT NULL REFERENCES coach_sessions(id) ON DELETE CASCADE,
		phase                 TEXT NOT NULL,
		sequence_order        INTEGER NOT NULL,
		is_complete           INTEGER NOT NULL DEFAULT 0,
		completion_criteria   TEXT NOT NULL DEFAULT '[]',
		completion_confidence REAL NOT NULL DEFAULT 0,
		evidence              TEXT NOT NULL DEFAULT '[]',
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL,
		UNIQUE(session_id, phase, sequence_order)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_checkpoints_session ON checkpoints(session_id, phase, sequence_order)`,
}

// Migrate runs all schema migrations. Every statement is idempotent, so
// the list re-runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
