package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"nestegg/internal/catalog/models"
	"nestegg/internal/platform/postgres"
	id "nestegg/pkg/domain"
	"nestegg/pkg/platform/sentinel"
)

// PostgresStore reads the institution catalog from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const institutionColumns = `id, name, type, status, created_at`

func (s *PostgresStore) Create(ctx context.Context, inst *models.Institution) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO institutions (id, name, type, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.UUID(inst.ID), inst.Name, string(inst.Type), inst.Status, inst.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create institution: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, instID id.InstitutionID) (*models.Institution, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+institutionColumns+` FROM institutions WHERE id = $1`, uuid.UUID(instID))
	inst, err := scanInstitution(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find institution: %w", err)
	}
	return inst, nil
}

func (s *PostgresStore) ListByType(ctx context.Context, t models.InstitutionType) ([]*models.Institution, error) {
	return s.list(ctx, `SELECT `+institutionColumns+` FROM institutions WHERE type = $1 ORDER BY created_at, id`, string(t))
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Institution, error) {
	return s.list(ctx, `SELECT `+institutionColumns+` FROM institutions ORDER BY created_at, id`)
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*models.Institution, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list institutions: %w", err)
	}
	defer rows.Close()

	var out []*models.Institution
	for rows.Next() {
		inst, err := scanInstitution(rows)
		if err != nil {
			return nil, fmt.Errorf("scan institution: %w", err)
		}
		out = append(out, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate institutions: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInstitution(row scanner) (*models.Institution, error) {
	var (
		inst    models.Institution
		rawID   uuid.UUID
		rawType string
	)
	if err := row.Scan(&rawID, &inst.Name, &rawType, &inst.Status, &inst.CreatedAt); err != nil {
		return nil, err
	}
	inst.ID = id.InstitutionID(rawID)
	inst.Type = models.InstitutionType(rawType)
	return &inst, nil
}
