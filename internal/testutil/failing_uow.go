package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/thea/internal/db"
)

// FailOnNthExecUoW runs the callback in a real transaction but makes write
// number FailOn (1-based) return Err. Reads are never intercepted, so a
// plan replacement can be cut off after the day row or partway through
// the item inserts.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin injected tx: %w", err)
	}
	w := &writeTrap{DBTX: tx, at: u.FailOn, err: u.Err}
	if err := fn(ctx, w); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type writeTrap struct {
	db.DBTX
	seen atomic.Int32
	at   int32
	err  error
}

func (w *writeTrap) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if w.seen.Add(1) == w.at {
		return nil, w.err
	}
	return w.DBTX.ExecContext(ctx, query, args...)
}
