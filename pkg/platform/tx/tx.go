package tx

import (
	"context"
	"database/sql"
	"time"

	dErrors "nestegg/pkg/domain-errors"
)

type ctxKey struct{}

var txKey = ctxKey{}

const defaultTxTimeout = 5 * time.Second

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}

// Runner opens transactions and exposes them to stores through the context.
type Runner struct {
	db      *sql.DB
	timeout time.Duration
}

// NewRunner builds a Runner. A zero timeout falls back to five seconds.
func NewRunner(db *sql.DB, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = defaultTxTimeout
	}
	return &Runner{db: db, timeout: timeout}
}

// RunInTx runs fn inside a transaction carried on ctx. When ctx already holds a
// transaction fn joins it instead of opening a new one.
func (r *Runner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, ok := From(ctx); ok {
		return fn(ctx)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	sqlTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = sqlTx.Rollback()
	}()

	if err := fn(WithTx(ctx, sqlTx)); err != nil {
		return err
	}
	return sqlTx.Commit()
}

// Execer is the subset of *sql.DB and *sql.Tx that stores issue queries through.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ExecerFrom returns the transaction on ctx, or db when there is none.
func ExecerFrom(ctx context.Context, db *sql.DB) Execer {
	if sqlTx, ok := From(ctx); ok {
		return sqlTx
	}
	return db
}
