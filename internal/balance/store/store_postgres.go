package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"nestegg/internal/balance/models"
	"nestegg/internal/platform/postgres"
	id "nestegg/pkg/domain"
	"nestegg/pkg/platform/sentinel"
	txcontext "nestegg/pkg/platform/tx"
)

// PostgresStore persists balance snapshots. The balance_snapshots_user_id_key
// constraint guarantees one row per user; Update is guarded by the version column.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const snapshotColumns = `id, user_id, fund_type_id, total, available, capitalization, voluntary,
	accumulated_yield, cutoff_on, updated_on, status, version`

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID) ([]*models.Snapshot, error) {
	return s.list(ctx, `SELECT `+snapshotColumns+` FROM balance_snapshots WHERE user_id = $1 ORDER BY id`,
		uuid.UUID(userID))
}

func (s *PostgresStore) ListActiveByUser(ctx context.Context, userID id.UserID) ([]*models.Snapshot, error) {
	return s.list(ctx, `SELECT `+snapshotColumns+` FROM balance_snapshots
		WHERE user_id = $1 AND status = ANY($2::text[]) ORDER BY id`,
		uuid.UUID(userID), pq.Array([]string{string(models.StatusActive)}))
}

func (s *PostgresStore) Create(ctx context.Context, snap *models.Snapshot) error {
	_, err := txcontext.ExecerFrom(ctx, s.db).ExecContext(ctx, `
		INSERT INTO balance_snapshots (`+snapshotColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1)
	`, uuid.UUID(snap.ID), uuid.UUID(snap.UserID), fundTypeArg(snap.FundTypeID),
		snap.Total, snap.Available, snap.Capitalization, snap.Voluntary, snap.AccumulatedYield,
		snap.CutoffOn, snap.UpdatedOn, string(snap.Status))
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create balance snapshot: %w", err)
	}
	snap.Version = 1
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, snap *models.Snapshot) error {
	res, err := txcontext.ExecerFrom(ctx, s.db).ExecContext(ctx, `
		UPDATE balance_snapshots SET
			fund_type_id = $3, total = $4, available = $5, capitalization = $6, voluntary = $7,
			accumulated_yield = $8, cutoff_on = $9, updated_on = $10, status = $11,
			version = version + 1
		WHERE id = $1 AND version = $2
	`, uuid.UUID(snap.ID), snap.Version, fundTypeArg(snap.FundTypeID),
		snap.Total, snap.Available, snap.Capitalization, snap.Voluntary, snap.AccumulatedYield,
		snap.CutoffOn, snap.UpdatedOn, string(snap.Status))
	if err != nil {
		return fmt.Errorf("update balance snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update balance snapshot: %w", err)
	}
	if n == 0 {
		return sentinel.ErrConflict
	}
	snap.Version++
	return nil
}

func (s *PostgresStore) SumTotal(ctx context.Context, userID id.UserID) (decimal.Decimal, error) {
	return s.sum(ctx, "total", userID)
}

func (s *PostgresStore) SumAvailable(ctx context.Context, userID id.UserID) (decimal.Decimal, error) {
	return s.sum(ctx, "available", userID)
}

func (s *PostgresStore) sum(ctx context.Context, column string, userID id.UserID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := txcontext.ExecerFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT COALESCE(SUM(`+column+`), 0) FROM balance_snapshots WHERE user_id = $1 AND status = $2`,
		uuid.UUID(userID), string(models.StatusActive),
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum balance %s: %w", column, err)
	}
	return total, nil
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*models.Snapshot, error) {
	rows, err := txcontext.ExecerFrom(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list balance snapshots: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Snapshot, 0, 1)
	for rows.Next() {
		var (
			snap           models.Snapshot
			rawID, rawUser uuid.UUID
			fundTypeID     uuid.NullUUID
			status         string
		)
		if err := rows.Scan(&rawID, &rawUser, &fundTypeID,
			&snap.Total, &snap.Available, &snap.Capitalization, &snap.Voluntary, &snap.AccumulatedYield,
			&snap.CutoffOn, &snap.UpdatedOn, &status, &snap.Version); err != nil {
			return nil, fmt.Errorf("scan balance snapshot: %w", err)
		}
		snap.ID = id.SnapshotID(rawID)
		snap.UserID = id.UserID(rawUser)
		snap.Status = models.Status(status)
		if fundTypeID.Valid {
			ft := id.FundTypeID(fundTypeID.UUID)
			snap.FundTypeID = &ft
		}
		out = append(out, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate balance snapshots: %w", err)
	}
	return out, nil
}

func fundTypeArg(ft *id.FundTypeID) uuid.NullUUID {
	if ft == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*ft), Valid: true}
}
