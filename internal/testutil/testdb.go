package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avelasco/stride/internal/db"
)

// NewTestDB opens an in-memory SQLite database with migrations applied.
// The database is closed automatically when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

// NewTestUoW returns a UnitOfWork bound to a fresh in-memory database.
func NewTestUoW(t *testing.T) (db.UnitOfWork, *sql.DB) {
	t.Helper()

	conn := NewTestDB(t)
	return db.NewSQLiteUnitOfWork(conn), conn
}
