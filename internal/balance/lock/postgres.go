package lock

import (
	"context"
	"errors"
	"fmt"

	id "nestegg/pkg/domain"
	txcontext "nestegg/pkg/platform/tx"
)

// TxRunner opens a transaction and exposes it to stores through ctx.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Postgres takes a transaction-scoped advisory lock keyed by user. fn runs in
// the same transaction, so the snapshot read-modify-write commits atomically
// and the lock is released on commit or rollback.
type Postgres struct {
	runner TxRunner
}

func NewPostgres(runner TxRunner) *Postgres {
	return &Postgres{runner: runner}
}

func (l *Postgres) WithUserLock(ctx context.Context, userID id.UserID, fn func(ctx context.Context) error) error {
	return l.runner.RunInTx(ctx, func(ctx context.Context) error {
		sqlTx, ok := txcontext.From(ctx)
		if !ok {
			return errors.New("advisory lock requires a transaction")
		}
		if _, err := sqlTx.ExecContext(ctx,
			`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, "recompute:"+userID.String(),
		); err != nil {
			return fmt.Errorf("acquire advisory lock: %w", err)
		}
		return fn(ctx)
	})
}
