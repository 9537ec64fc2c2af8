package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	id "nestegg/pkg/domain"
	dErrors "nestegg/pkg/domain-errors"
)

// ContributionInput carries the caller-supplied fields of a create or update.
// InstitutionID is only a hint: attribution overrides it whenever the user's
// profile resolves to an institution.
type ContributionInput struct {
	InstitutionID    *id.InstitutionID
	FundTypeID       *id.FundTypeID
	CUSPP            string
	Period           string
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
}

// CreateRequest registers a new contribution for UserID.
type CreateRequest struct {
	UserID id.UserID
	ContributionInput
}

func (in *ContributionInput) Normalize() {
	if in == nil {
		return
	}
	in.CUSPP = strings.TrimSpace(in.CUSPP)
	in.Period = strings.TrimSpace(in.Period)
	in.EmployerName = strings.TrimSpace(in.EmployerName)
	in.EmployerTaxID = strings.TrimSpace(in.EmployerTaxID)
	in.Notes = strings.TrimSpace(in.Notes)
	in.Status = Status(strings.ToLower(strings.TrimSpace(string(in.Status))))
	if !in.ContributedOn.IsZero() {
		in.ContributedOn = DateOnly(in.ContributedOn)
	}
}

// Follows validation order: Size -> Required -> Syntax -> Semantic.
func (in *ContributionInput) Validate() error {
	if in == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	if len(in.Notes) > 1000 {
		return dErrors.New(dErrors.CodeValidation, "notes must be 1000 characters or less")
	}
	if len(in.EmployerName) > 255 {
		return dErrors.New(dErrors.CodeValidation, "employer_name must be 255 characters or less")
	}

	if in.Period == "" {
		return dErrors.New(dErrors.CodeValidation, "period is required")
	}
	if in.ContributedOn.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "contribution_date is required")
	}

	if _, err := id.ParsePeriod(in.Period); err != nil {
		return dErrors.New(dErrors.CodeValidation, "period must be formatted as YYYY-MM")
	}
	if in.Status != "" && !in.Status.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "status must be one of registered, processed, observed, deleted")
	}

	for _, f := range []struct {
		name  string
		value decimal.NullDecimal
	}{
		{"amount", in.Amount},
		{"worker_amount", in.WorkerAmount},
		{"employer_amount", in.EmployerAmount},
		{"commission", in.Commission},
		{"insurance_premium", in.InsurancePremium},
		{"declared_salary", in.DeclaredSalary},
	} {
		if f.value.Valid && f.value.Decimal.IsNegative() {
			return dErrors.New(dErrors.CodeValidation, f.name+" must not be negative")
		}
	}
	if in.DaysWorked != nil && (*in.DaysWorked < 0 || *in.DaysWorked > 31) {
		return dErrors.New(dErrors.CodeValidation, "days_worked must be between 0 and 31")
	}
	return nil
}

func (r *CreateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.UserID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "user_id is required")
	}
	return r.ContributionInput.Validate()
}

// Apply copies the input onto c. Owner, ID and timestamps are left untouched.
func (in *ContributionInput) Apply(c *Contribution) {
	c.FundTypeID = in.FundTypeID
	c.CUSPP = in.CUSPP
	c.Period = id.Period(in.Period)
	c.Amount = in.Amount
	c.WorkerAmount = in.WorkerAmount
	c.EmployerAmount = in.EmployerAmount
	c.Commission = in.Commission
	c.InsurancePremium = in.InsurancePremium
	c.ContributedOn = in.ContributedOn
	c.EmployerName = in.EmployerName
	c.EmployerTaxID = in.EmployerTaxID
	c.DeclaredSalary = in.DeclaredSalary
	c.DaysWorked = in.DaysWorked
	c.Notes = in.Notes
	if in.Status != "" {
		c.Status = in.Status
	}
	if in.InstitutionID != nil {
		c.Institution = &InstitutionRef{ID: *in.InstitutionID}
	}
}
