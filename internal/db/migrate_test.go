package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesSchema(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"coach_sessions", "messages", "checkpoints"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	// Re-running the full migration list must not fail.
	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))
}

func TestMigrate_ForeignKeysCascade(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(
		`INSERT INTO coach_sessions (id, title, created_at, updated_at) VALUES ('s1', 'test', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = database.Exec(
		`INSERT INTO messages (id, session_id, role, content, phase, created_at) VALUES ('m1', 's1', 'user', 'hi', 'discovery', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = database.Exec(`DELETE FROM coach_sessions WHERE id = 's1'`)
	require.NoError(t, err)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&count))
	assert.Zero(t, count, "messages should cascade on session delete")
}

func TestMigrate_ChecksPhaseEnum(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(
		`INSERT INTO coach_sessions (id, title, phase, created_at, updated_at) VALUES ('s1', 'test', 'limbo', 'x', 'x')`)
	assert.Error(t, err, "unknown phase must violate the CHECK constraint")
}

func TestMigrate_ChecksCheckpointUniqueness(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(
		`INSERT INTO coach_sessions (id, title, created_at, updated_at) VALUES ('s1', 'test', 'x', 'x')`)
	require.NoError(t, err)

	insert := `INSERT INTO checkpoints (id, session_id, phase, sequence_order, created_at, updated_at)
		VALUES (?, 's1', 'discovery', 1, 'x', 'x')`
	_, err = database.Exec(insert, "c1")
	require.NoError(t, err)
	_, err = database.Exec(insert, "c2")
	assert.Error(t, err, "duplicate sequence order within a phase must be rejected")
}
