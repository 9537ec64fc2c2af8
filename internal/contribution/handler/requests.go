package handler

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"nestegg/internal/contribution/models"
	id "nestegg/pkg/domain"
	dErrors "nestegg/pkg/domain-errors"
)

const dateLayout = "2006-01-02"

// ContributionBody is the shared JSON body of create and update.
type ContributionBody struct {
	InstitutionID    string              `json:"institution_id,omitempty"`
	FundTypeID       string              `json:"fund_type_id,omitempty"`
	CUSPP            string              `json:"cuspp"`
	Period           string              `json:"period"`
	Amount           decimal.NullDecimal `json:"amount"`
	WorkerAmount     decimal.NullDecimal `json:"worker_amount"`
	EmployerAmount   decimal.NullDecimal `json:"employer_amount"`
	Commission       decimal.NullDecimal `json:"commission"`
	InsurancePremium decimal.NullDecimal `json:"insurance_premium"`
	ContributionDate string              `json:"contribution_date"`
	EmployerName     string              `json:"employer_name"`
	EmployerTaxID    string              `json:"employer_tax_id"`
	DeclaredSalary   decimal.NullDecimal `json:"declared_salary"`
	DaysWorked       *int                `json:"days_worked,omitempty"`
	Notes            string              `json:"notes"`
	Status           string              `json:"status,omitempty"`

	parsed models.ContributionInput
}

func (b *ContributionBody) validate() error {
	if len(b.InstitutionID) > 64 || len(b.FundTypeID) > 64 || len(b.ContributionDate) > 32 {
		return dErrors.New(dErrors.CodeValidation, "identifier or date field too long")
	}

	b.ContributionDate = strings.TrimSpace(b.ContributionDate)
	if b.ContributionDate == "" {
		return dErrors.New(dErrors.CodeValidation, "contribution_date is required")
	}
	on, err := time.Parse(dateLayout, b.ContributionDate)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "contribution_date must be formatted as YYYY-MM-DD")
	}

	in := models.ContributionInput{
		CUSPP:            b.CUSPP,
		Period:           b.Period,
		Amount:           b.Amount,
		WorkerAmount:     b.WorkerAmount,
		EmployerAmount:   b.EmployerAmount,
		Commission:       b.Commission,
		InsurancePremium: b.InsurancePremium,
		ContributedOn:    on,
		EmployerName:     b.EmployerName,
		EmployerTaxID:    b.EmployerTaxID,
		DeclaredSalary:   b.DeclaredSalary,
		DaysWorked:       b.DaysWorked,
		Notes:            b.Notes,
		Status:           models.Status(b.Status),
	}
	if s := strings.TrimSpace(b.InstitutionID); s != "" {
		instID, err := id.ParseInstitutionID(s)
		if err != nil {
			return err
		}
		in.InstitutionID = &instID
	}
	if s := strings.TrimSpace(b.FundTypeID); s != "" {
		ft, err := id.ParseFundTypeID(s)
		if err != nil {
			return err
		}
		in.FundTypeID = &ft
	}

	in.Normalize()
	if err := in.Validate(); err != nil {
		return err
	}
	b.parsed = in
	return nil
}

// CreateContributionRequest is the body of POST /contributions.
type CreateContributionRequest struct {
	UserID string `json:"user_id"`
	ContributionBody

	parsedUserID id.UserID
}

// Validate implements httputil.Preparable.
func (r *CreateContributionRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.UserID = strings.TrimSpace(r.UserID)
	if r.UserID == "" {
		return dErrors.New(dErrors.CodeValidation, "user_id is required")
	}
	userID, err := id.ParseUserID(r.UserID)
	if err != nil {
		return err
	}
	r.parsedUserID = userID
	return r.ContributionBody.validate()
}

func (r *CreateContributionRequest) ToDomain() *models.CreateRequest {
	return &models.CreateRequest{UserID: r.parsedUserID, ContributionInput: r.parsed}
}

// UpdateContributionRequest is the body of PUT /contributions/{id}.
type UpdateContributionRequest struct {
	ContributionBody
}

func (r *UpdateContributionRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return r.ContributionBody.validate()
}

func (r *UpdateContributionRequest) ToDomain() *models.ContributionInput {
	in := r.parsed
	return &in
}
