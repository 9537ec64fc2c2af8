// Package seed loads a demo pension-system catalog, one demo user and their
// insurance records so a fresh deployment has something to show.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogmodels "nestegg/internal/catalog/models"
	coveragemodels "nestegg/internal/coverage/models"
	profilemodels "nestegg/internal/profile/models"
	id "nestegg/pkg/domain"
	"nestegg/pkg/platform/sentinel"
)

type CatalogWriter interface {
	Create(ctx context.Context, inst *catalogmodels.Institution) error
}

type ProfileWriter interface {
	Save(ctx context.Context, p *profilemodels.UserProfile) error
}

type CoverageWriter interface {
	SavePolicy(ctx context.Context, p *coveragemodels.Policy) error
	SavePayment(ctx context.Context, p *coveragemodels.Payment) error
	SaveProcedure(ctx context.Context, p *coveragemodels.Procedure) error
}

// Fixed identifiers keep the seed idempotent across restarts.
var (
	DemoUserID       = id.UserID(uuid.MustParse("6f1d2c3b-4a59-4e68-8b7a-9c0d1e2f3a4b"))
	PublicSystemID   = id.InstitutionID(uuid.MustParse("0b7e4f10-0001-4000-8000-000000000001"))
	ManagerHabitatID = id.InstitutionID(uuid.MustParse("0b7e4f10-0002-4000-8000-000000000002"))
	ManagerIntegraID = id.InstitutionID(uuid.MustParse("0b7e4f10-0003-4000-8000-000000000003"))
	ManagerPrimaID   = id.InstitutionID(uuid.MustParse("0b7e4f10-0004-4000-8000-000000000004"))
	ManagerProfuturo = id.InstitutionID(uuid.MustParse("0b7e4f10-0005-4000-8000-000000000005"))
)

// Institutions returns the demo catalog in creation order. The public system
// comes first so fallback attribution is deterministic.
func Institutions(now time.Time) []*catalogmodels.Institution {
	entries := []struct {
		id   id.InstitutionID
		name string
		kind catalogmodels.InstitutionType
	}{
		{PublicSystemID, "ONP", catalogmodels.InstitutionTypePublicSystem},
		{ManagerHabitatID, "AFP Habitat", catalogmodels.InstitutionTypePrivateManager},
		{ManagerIntegraID, "AFP Integra", catalogmodels.InstitutionTypePrivateManager},
		{ManagerPrimaID, "AFP Prima", catalogmodels.InstitutionTypePrivateManager},
		{ManagerProfuturo, "AFP Profuturo", catalogmodels.InstitutionTypePrivateManager},
	}
	out := make([]*catalogmodels.Institution, 0, len(entries))
	for i, e := range entries {
		out = append(out, &catalogmodels.Institution{
			ID:        e.id,
			Name:      e.name,
			Type:      e.kind,
			Status:    "active",
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
		})
	}
	return out
}

func DemoProfile() *profilemodels.UserProfile {
	affiliated := time.Date(2016, time.March, 1, 0, 0, 0, 0, time.UTC)
	return &profilemodels.UserProfile{
		ID:           DemoUserID,
		FullName:     "Demo User",
		NationalID:   "00000000",
		Email:        "demo@nestegg.local",
		Regime:       profilemodels.RegimePrivateManager,
		FundManager:  &profilemodels.FundManagerRef{ID: ManagerPrimaID, Name: "AFP Prima"},
		CUSPP:        "000000DEMO00",
		AffiliatedOn: &affiliated,
	}
}

// Demo writes the catalog, the demo profile, and coverage records dated
// relative to now so the demo dashboard shows live alerts.
func Demo(ctx context.Context, catalog CatalogWriter, profiles ProfileWriter, coverage CoverageWriter, now time.Time) error {
	for _, inst := range Institutions(now) {
		if err := catalog.Create(ctx, inst); err != nil && !errors.Is(err, sentinel.ErrConflict) {
			return fmt.Errorf("seed institution %s: %w", inst.Name, err)
		}
	}
	if err := profiles.Save(ctx, DemoProfile()); err != nil {
		return fmt.Errorf("seed demo profile: %w", err)
	}

	health := id.PolicyID(uuid.MustParse("0c1a2b3c-0001-4000-8000-000000000001"))
	life := id.PolicyID(uuid.MustParse("0c1a2b3c-0002-4000-8000-000000000002"))
	policies := []*coveragemodels.Policy{
		{
			ID:             health,
			UserID:         DemoUserID,
			Number:         "POL-DEMO-001",
			Status:         coveragemodels.PolicyStatusActive,
			StartsOn:       now.AddDate(-1, 0, 20),
			ExpiresOn:      now.AddDate(0, 0, 20),
			InsuredAmount:  decimal.NewFromInt(50000),
			MonthlyPremium: decimal.RequireFromString("89.90"),
		},
		{
			ID:             life,
			UserID:         DemoUserID,
			Number:         "POL-DEMO-002",
			Status:         coveragemodels.PolicyStatusInForce,
			StartsOn:       now.AddDate(-2, 0, 0),
			ExpiresOn:      now.AddDate(3, 0, 0),
			InsuredAmount:  decimal.NewFromInt(120000),
			MonthlyPremium: decimal.RequireFromString("45.50"),
		},
	}
	for _, p := range policies {
		if err := coverage.SavePolicy(ctx, p); err != nil {
			return fmt.Errorf("seed policy %s: %w", p.Number, err)
		}
	}

	if err := coverage.SavePayment(ctx, &coveragemodels.Payment{
		ID:          id.PaymentID(uuid.MustParse("0d2b3c4d-0001-4000-8000-000000000001")),
		PolicyID:    health,
		UserID:      DemoUserID,
		Installment: 12,
		AmountPaid:  decimal.RequireFromString("89.90"),
		Status:      coveragemodels.PaymentStatusPending,
	}); err != nil {
		return fmt.Errorf("seed payment: %w", err)
	}

	if err := coverage.SaveProcedure(ctx, &coveragemodels.Procedure{
		ID:          id.ProcedureID(uuid.MustParse("0e3c4d5e-0001-4000-8000-000000000001")),
		UserID:      DemoUserID,
		PolicyID:    &life,
		Kind:        "beneficiary_update",
		Status:      coveragemodels.ProcedureStatusInProcess,
		Priority:    "normal",
		RequestedAt: now.AddDate(0, 0, -6),
	}); err != nil {
		return fmt.Errorf("seed procedure: %w", err)
	}
	return nil
}
