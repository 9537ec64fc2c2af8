package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"nestegg/internal/coverage/models"
	id "nestegg/pkg/domain"
)

// PostgresStore reads coverage tables. Writes exist only for seeding.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) SavePolicy(ctx context.Context, p *models.Policy) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO policies (id, user_id, number, status, starts_on, expires_on, insured_amount, monthly_premium)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			expires_on = EXCLUDED.expires_on,
			insured_amount = EXCLUDED.insured_amount,
			monthly_premium = EXCLUDED.monthly_premium
	`, uuid.UUID(p.ID), uuid.UUID(p.UserID), p.Number, string(p.Status), p.StartsOn, p.ExpiresOn, p.InsuredAmount, p.MonthlyPremium)
	if err != nil {
		return fmt.Errorf("save policy: %w", err)
	}
	return nil
}

func (s *PostgresStore) SavePayment(ctx context.Context, p *models.Payment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payments (id, policy_id, user_id, installment, amount_paid, paid_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			amount_paid = EXCLUDED.amount_paid,
			paid_at = EXCLUDED.paid_at,
			status = EXCLUDED.status
	`, uuid.UUID(p.ID), uuid.UUID(p.PolicyID), uuid.UUID(p.UserID), p.Installment, p.AmountPaid, p.PaidAt, string(p.Status))
	if err != nil {
		return fmt.Errorf("save payment: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveProcedure(ctx context.Context, p *models.Procedure) error {
	var policyID uuid.NullUUID
	if p.PolicyID != nil {
		policyID = uuid.NullUUID{UUID: uuid.UUID(*p.PolicyID), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO procedures (id, user_id, policy_id, kind, status, priority, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			priority = EXCLUDED.priority
	`, uuid.UUID(p.ID), uuid.UUID(p.UserID), policyID, p.Kind, string(p.Status), p.Priority, p.RequestedAt)
	if err != nil {
		return fmt.Errorf("save procedure: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListPoliciesByUser(ctx context.Context, userID id.UserID) ([]*models.Policy, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, number, status, starts_on, expires_on, insured_amount, monthly_premium
		FROM policies
		WHERE user_id = $1
		ORDER BY expires_on, number
	`, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Policy, 0)
	for rows.Next() {
		var (
			p              models.Policy
			rawID, rawUser uuid.UUID
			status         string
		)
		if err := rows.Scan(&rawID, &rawUser, &p.Number, &status, &p.StartsOn, &p.ExpiresOn, &p.InsuredAmount, &p.MonthlyPremium); err != nil {
			return nil, fmt.Errorf("scan policy: %w", err)
		}
		p.ID = id.PolicyID(rawID)
		p.UserID = id.UserID(rawUser)
		p.Status = models.PolicyStatus(status)
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ListPendingPaymentsByUser(ctx context.Context, userID id.UserID) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, policy_id, user_id, installment, amount_paid, paid_at, status
		FROM payments
		WHERE user_id = $1 AND status = $2
		ORDER BY installment
	`, uuid.UUID(userID), string(models.PaymentStatusPending))
	if err != nil {
		return nil, fmt.Errorf("list pending payments: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Payment, 0)
	for rows.Next() {
		var (
			p                        models.Payment
			rawID, rawPolicy, rawUsr uuid.UUID
			paidAt                   sql.NullTime
			status                   string
		)
		if err := rows.Scan(&rawID, &rawPolicy, &rawUsr, &p.Installment, &p.AmountPaid, &paidAt, &status); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.ID = id.PaymentID(rawID)
		p.PolicyID = id.PolicyID(rawPolicy)
		p.UserID = id.UserID(rawUsr)
		p.Status = models.PaymentStatus(status)
		if paidAt.Valid {
			t := paidAt.Time.In(time.UTC)
			p.PaidAt = &t
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ListOpenProceduresByUser(ctx context.Context, userID id.UserID) ([]*models.Procedure, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, policy_id, kind, status, priority, requested_at
		FROM procedures
		WHERE user_id = $1 AND status = ANY($2::text[])
		ORDER BY requested_at DESC
	`, uuid.UUID(userID), pq.Array(openStatuses()))
	if err != nil {
		return nil, fmt.Errorf("list open procedures: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Procedure, 0)
	for rows.Next() {
		var (
			p              models.Procedure
			rawID, rawUser uuid.UUID
			policyID       uuid.NullUUID
			status         string
		)
		if err := rows.Scan(&rawID, &rawUser, &policyID, &p.Kind, &status, &p.Priority, &p.RequestedAt); err != nil {
			return nil, fmt.Errorf("scan procedure: %w", err)
		}
		p.ID = id.ProcedureID(rawID)
		p.UserID = id.UserID(rawUser)
		p.Status = models.ProcedureStatus(status)
		if policyID.Valid {
			pid := id.PolicyID(policyID.UUID)
			p.PolicyID = &pid
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountOpenProceduresByUser(ctx context.Context, userID id.UserID) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM procedures WHERE user_id = $1 AND status = ANY($2::text[])
	`, uuid.UUID(userID), pq.Array(openStatuses())).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count open procedures: %w", err)
	}
	return n, nil
}

func openStatuses() []string {
	out := make([]string, 0, len(models.OpenProcedureStatuses))
	for _, st := range models.OpenProcedureStatuses {
		out = append(out, string(st))
	}
	return out
}
