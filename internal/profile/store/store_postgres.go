package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nestegg/internal/profile/models"
	id "nestegg/pkg/domain"
	"nestegg/pkg/platform/sentinel"
)

// PostgresStore reads user profiles, joining the fund manager name from the catalog.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, p *models.UserProfile) error {
	var managerID *uuid.UUID
	if p.FundManager != nil {
		u := uuid.UUID(p.FundManager.ID)
		managerID = &u
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_profiles (id, full_name, national_id, email, regime, fund_manager_id, cuspp, affiliated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			national_id = EXCLUDED.national_id,
			email = EXCLUDED.email,
			regime = EXCLUDED.regime,
			fund_manager_id = EXCLUDED.fund_manager_id,
			cuspp = EXCLUDED.cuspp,
			affiliated_on = EXCLUDED.affiliated_on,
			updated_at = now()
	`, uuid.UUID(p.ID), p.FullName, p.NationalID, p.Email, string(p.Regime), managerID, p.CUSPP, p.AffiliatedOn)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.UserProfile, error) {
	var (
		p            models.UserProfile
		rawID        uuid.UUID
		regime       string
		managerID    uuid.NullUUID
		managerName  sql.NullString
		affiliatedOn sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT p.id, p.full_name, p.national_id, p.email, p.regime, p.fund_manager_id, i.name, p.cuspp, p.affiliated_on
		FROM user_profiles p
		LEFT JOIN institutions i ON i.id = p.fund_manager_id
		WHERE p.id = $1
	`, uuid.UUID(userID)).Scan(&rawID, &p.FullName, &p.NationalID, &p.Email, &regime, &managerID, &managerName, &p.CUSPP, &affiliatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	p.ID = id.UserID(rawID)
	p.Regime = models.Regime(regime)
	if managerID.Valid {
		p.FundManager = &models.FundManagerRef{ID: id.InstitutionID(managerID.UUID), Name: managerName.String}
	}
	if affiliatedOn.Valid {
		t := affiliatedOn.Time.In(time.UTC)
		p.AffiliatedOn = &t
	}
	return &p, nil
}
