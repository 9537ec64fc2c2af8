package models

import (
	"time"

	"github.com/shopspring/decimal"

	catalogmodels "nestegg/internal/catalog/models"
	id "nestegg/pkg/domain"
)

// Status is the processing state of a contribution record.
type Status string

const (
	StatusRegistered Status = "registered"
	StatusProcessed  Status = "processed"
	StatusObserved   Status = "observed"
	// StatusDeleted marks a soft-deleted record. It is excluded from balances and analytics.
	StatusDeleted Status = "deleted"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusRegistered, StatusProcessed, StatusObserved, StatusDeleted:
		return true
	}
	return false
}

// InstitutionRef is the attributed institution as denormalized on read.
type InstitutionRef struct {
	ID   id.InstitutionID              `json:"id"`
	Name string                        `json:"name"`
	Type catalogmodels.InstitutionType `json:"type"`
}

// Contribution is one monthly pension contribution made on behalf of a user.
//
// Invariants:
//   - UserID never changes after creation
//   - Institution reflects the user's profile at the last create/update, never later edits
//   - A missing Amount counts as zero in every aggregate
type Contribution struct {
	ID               id.ContributionID
	UserID           id.UserID
	Institution      *InstitutionRef
	FundTypeID       *id.FundTypeID
	CUSPP            string
	Period           id.Period
	Amount           decimal.NullDecimal
	WorkerAmount     decimal.NullDecimal
	EmployerAmount   decimal.NullDecimal
	Commission       decimal.NullDecimal
	InsurancePremium decimal.NullDecimal
	ContributedOn    time.Time
	EmployerName     string
	EmployerTaxID    string
	DeclaredSalary   decimal.NullDecimal
	DaysWorked       *int
	Notes            string
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AmountOrZero returns the total amount, treating a missing value as zero.
func (c *Contribution) AmountOrZero() decimal.Decimal {
	if !c.Amount.Valid {
		return decimal.Zero
	}
	return c.Amount.Decimal
}

func (c *Contribution) IsDeleted() bool {
	return c.Status == StatusDeleted
}

// InSystem reports whether the record is attributed to an institution of type t.
func (c *Contribution) InSystem(t catalogmodels.InstitutionType) bool {
	return c.Institution != nil && c.Institution.Type == t
}

// Year is the calendar year of the contribution date.
func (c *Contribution) Year() int {
	return c.ContributedOn.Year()
}

// Live filters out soft-deleted records, preserving order.
func Live(records []*Contribution) []*Contribution {
	out := make([]*Contribution, 0, len(records))
	for _, c := range records {
		if !c.IsDeleted() {
			out = append(out, c)
		}
	}
	return out
}

// Sum adds the amounts of records, skipping soft-deleted ones.
func Sum(records []*Contribution) decimal.Decimal {
	total := decimal.Zero
	for _, c := range records {
		if c.IsDeleted() {
			continue
		}
		total = total.Add(c.AmountOrZero())
	}
	return total
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
