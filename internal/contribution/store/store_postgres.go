package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogmodels "nestegg/internal/catalog/models"
	"nestegg/internal/contribution/models"
	"nestegg/internal/platform/postgres"
	id "nestegg/pkg/domain"
	"nestegg/pkg/platform/sentinel"
	txcontext "nestegg/pkg/platform/tx"
)

// PostgresStore persists contributions in PostgreSQL. Queries join the catalog
// so reads carry the attributed institution's name and type. When the context
// carries a transaction, every statement runs inside it.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectContribution = `
	SELECT c.id, c.user_id, c.institution_id, i.name, i.type, c.fund_type_id, c.cuspp, c.period,
		c.amount, c.worker_amount, c.employer_amount, c.commission, c.insurance_premium,
		c.contributed_on, c.employer_name, c.employer_tax_id, c.declared_salary, c.days_worked,
		c.notes, c.status, c.created_at, c.updated_at
	FROM contributions c
	LEFT JOIN institutions i ON i.id = c.institution_id
`

const newestFirst = ` ORDER BY c.contributed_on DESC, c.created_at DESC, c.id DESC`

func (s *PostgresStore) Create(ctx context.Context, c *models.Contribution) error {
	_, err := txcontext.ExecerFrom(ctx, s.db).ExecContext(ctx, `
		INSERT INTO contributions (
			id, user_id, institution_id, fund_type_id, cuspp, period,
			amount, worker_amount, employer_amount, commission, insurance_premium,
			contributed_on, employer_name, employer_tax_id, declared_salary, days_worked,
			notes, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`, writeArgs(c)...)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create contribution: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, c *models.Contribution) error {
	res, err := txcontext.ExecerFrom(ctx, s.db).ExecContext(ctx, `
		UPDATE contributions SET
			user_id = $2, institution_id = $3, fund_type_id = $4, cuspp = $5, period = $6,
			amount = $7, worker_amount = $8, employer_amount = $9, commission = $10, insurance_premium = $11,
			contributed_on = $12, employer_name = $13, employer_tax_id = $14, declared_salary = $15,
			days_worked = $16, notes = $17, status = $18, created_at = $19, updated_at = $20
		WHERE id = $1
	`, writeArgs(c)...)
	if err != nil {
		return fmt.Errorf("update contribution: %w", err)
	}
	return expectOneRow(res, "update contribution")
}

func (s *PostgresStore) Delete(ctx context.Context, contributionID id.ContributionID) error {
	res, err := txcontext.ExecerFrom(ctx, s.db).ExecContext(ctx,
		`DELETE FROM contributions WHERE id = $1`, uuid.UUID(contributionID))
	if err != nil {
		return fmt.Errorf("delete contribution: %w", err)
	}
	return expectOneRow(res, "delete contribution")
}

func (s *PostgresStore) FindByID(ctx context.Context, contributionID id.ContributionID) (*models.Contribution, error) {
	row := txcontext.ExecerFrom(ctx, s.db).QueryRowContext(ctx,
		selectContribution+` WHERE c.id = $1`, uuid.UUID(contributionID))
	c, err := scanContribution(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find contribution: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID) ([]*models.Contribution, error) {
	return s.list(ctx, selectContribution+` WHERE c.user_id = $1`+newestFirst, uuid.UUID(userID))
}

func (s *PostgresStore) ListByUserAndYear(ctx context.Context, userID id.UserID, year int) ([]*models.Contribution, error) {
	return s.list(ctx,
		selectContribution+` WHERE c.user_id = $1 AND EXTRACT(YEAR FROM c.contributed_on) = $2`+newestFirst,
		uuid.UUID(userID), year)
}

func (s *PostgresStore) ListByUserAndInstitutionType(ctx context.Context, userID id.UserID, t catalogmodels.InstitutionType) ([]*models.Contribution, error) {
	return s.list(ctx, selectContribution+` WHERE c.user_id = $1 AND i.type = $2`+newestFirst,
		uuid.UUID(userID), string(t))
}

func (s *PostgresStore) SumByUser(ctx context.Context, userID id.UserID) (decimal.Decimal, error) {
	return s.sum(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM contributions
		WHERE user_id = $1 AND status <> $2
	`, uuid.UUID(userID), string(models.StatusDeleted))
}

func (s *PostgresStore) SumByUserAndYear(ctx context.Context, userID id.UserID, year int) (decimal.Decimal, error) {
	return s.sum(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM contributions
		WHERE user_id = $1 AND status <> $2 AND EXTRACT(YEAR FROM contributed_on) = $3
	`, uuid.UUID(userID), string(models.StatusDeleted), year)
}

func (s *PostgresStore) SumByUserAndInstitutionType(ctx context.Context, userID id.UserID, t catalogmodels.InstitutionType) (decimal.Decimal, error) {
	return s.sum(ctx, `
		SELECT COALESCE(SUM(c.amount), 0) FROM contributions c
		JOIN institutions i ON i.id = c.institution_id
		WHERE c.user_id = $1 AND c.status <> $2 AND i.type = $3
	`, uuid.UUID(userID), string(models.StatusDeleted), string(t))
}

func (s *PostgresStore) sum(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := txcontext.ExecerFrom(ctx, s.db).QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum contributions: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*models.Contribution, error) {
	rows, err := txcontext.ExecerFrom(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Contribution, 0)
	for rows.Next() {
		c, err := scanContribution(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contribution: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contributions: %w", err)
	}
	return out, nil
}

func writeArgs(c *models.Contribution) []any {
	var institutionID uuid.NullUUID
	if c.Institution != nil {
		institutionID = uuid.NullUUID{UUID: uuid.UUID(c.Institution.ID), Valid: true}
	}
	var fundTypeID uuid.NullUUID
	if c.FundTypeID != nil {
		fundTypeID = uuid.NullUUID{UUID: uuid.UUID(*c.FundTypeID), Valid: true}
	}
	var daysWorked sql.NullInt64
	if c.DaysWorked != nil {
		daysWorked = sql.NullInt64{Int64: int64(*c.DaysWorked), Valid: true}
	}
	return []any{
		uuid.UUID(c.ID), uuid.UUID(c.UserID), institutionID, fundTypeID, c.CUSPP, string(c.Period),
		c.Amount, c.WorkerAmount, c.EmployerAmount, c.Commission, c.InsurancePremium,
		c.ContributedOn, c.EmployerName, c.EmployerTaxID, c.DeclaredSalary, daysWorked,
		c.Notes, string(c.Status), c.CreatedAt, c.UpdatedAt,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContribution(row scanner) (*models.Contribution, error) {
	var (
		c               models.Contribution
		rawID, rawUser  uuid.UUID
		institutionID   uuid.NullUUID
		institutionName sql.NullString
		institutionType sql.NullString
		fundTypeID      uuid.NullUUID
		period, status  string
		daysWorked      sql.NullInt64
	)
	err := row.Scan(
		&rawID, &rawUser, &institutionID, &institutionName, &institutionType, &fundTypeID, &c.CUSPP, &period,
		&c.Amount, &c.WorkerAmount, &c.EmployerAmount, &c.Commission, &c.InsurancePremium,
		&c.ContributedOn, &c.EmployerName, &c.EmployerTaxID, &c.DeclaredSalary, &daysWorked,
		&c.Notes, &status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.ID = id.ContributionID(rawID)
	c.UserID = id.UserID(rawUser)
	c.Period = id.Period(period)
	c.Status = models.Status(status)
	c.ContributedOn = models.DateOnly(c.ContributedOn)
	if institutionID.Valid {
		c.Institution = &models.InstitutionRef{
			ID:   id.InstitutionID(institutionID.UUID),
			Name: institutionName.String,
			Type: catalogmodels.InstitutionType(institutionType.String),
		}
	}
	if fundTypeID.Valid {
		ft := id.FundTypeID(fundTypeID.UUID)
		c.FundTypeID = &ft
	}
	if daysWorked.Valid {
		d := int(daysWorked.Int64)
		c.DaysWorked = &d
	}
	return &c, nil
}

func expectOneRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
