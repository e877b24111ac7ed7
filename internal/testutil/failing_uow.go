package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avelasco/stride/internal/db"
)

// FailOnNthExecUoW wraps a real UnitOfWork and injects an error on the Nth
// ExecContext inside the transaction. Useful for asserting that multi-write
// operations roll back atomically.
type FailOnNthExecUoW struct {
	Inner  db.UnitOfWork
	FailOn int // 1-based; 0 disables injection
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.Inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingTx{inner: tx, failOn: u.FailOn})
	})
}

type failingTx struct {
	inner  db.DBTX
	failOn int
	calls  int
}

func (t *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	t.calls++
	if t.failOn > 0 && t.calls == t.failOn {
		return nil, fmt.Errorf("injected failure on exec %d", t.calls)
	}
	return t.inner.ExecContext(ctx, query, args...)
}

func (t *failingTx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.inner.QueryContext(ctx, query, args...)
}

func (t *failingTx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return t.inner.QueryRowContext(ctx, query, args...)
}
