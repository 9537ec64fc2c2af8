package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"nestegg/internal/contribution/models"
)

type InstitutionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ContributionResponse is the JSON form of a contribution record. Money is
// rendered as decimal strings.
type ContributionResponse struct {
	ID               string               `json:"id"`
	UserID           string               `json:"user_id"`
	Institution      *InstitutionResponse `json:"institution"`
	FundTypeID       *string              `json:"fund_type_id"`
	CUSPP            string               `json:"cuspp"`
	Period           string               `json:"period"`
	Amount           decimal.Decimal      `json:"amount"`
	WorkerAmount     decimal.NullDecimal  `json:"worker_amount"`
	EmployerAmount   decimal.NullDecimal  `json:"employer_amount"`
	Commission       decimal.NullDecimal  `json:"commission"`
	InsurancePremium decimal.NullDecimal  `json:"insurance_premium"`
	ContributionDate string               `json:"contribution_date"`
	EmployerName     string               `json:"employer_name"`
	EmployerTaxID    string               `json:"employer_tax_id"`
	DeclaredSalary   decimal.NullDecimal  `json:"declared_salary"`
	DaysWorked       *int                 `json:"days_worked"`
	Notes            string               `json:"notes"`
	Status           string               `json:"status"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

type ContributionListResponse struct {
	Contributions []*ContributionResponse `json:"contributions"`
	Count         int                     `json:"count"`
	Total         decimal.Decimal         `json:"total"`
}

func FromContribution(c *models.Contribution) *ContributionResponse {
	resp := &ContributionResponse{
		ID:               c.ID.String(),
		UserID:           c.UserID.String(),
		CUSPP:            c.CUSPP,
		Period:           c.Period.String(),
		Amount:           c.AmountOrZero(),
		WorkerAmount:     c.WorkerAmount,
		EmployerAmount:   c.EmployerAmount,
		Commission:       c.Commission,
		InsurancePremium: c.InsurancePremium,
		ContributionDate: c.ContributedOn.Format(dateLayout),
		EmployerName:     c.EmployerName,
		EmployerTaxID:    c.EmployerTaxID,
		DeclaredSalary:   c.DeclaredSalary,
		DaysWorked:       c.DaysWorked,
		Notes:            c.Notes,
		Status:           string(c.Status),
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	if c.Institution != nil {
		resp.Institution = &InstitutionResponse{
			ID:   c.Institution.ID.String(),
			Name: c.Institution.Name,
			Type: string(c.Institution.Type),
		}
	}
	if c.FundTypeID != nil {
		ft := c.FundTypeID.String()
		resp.FundTypeID = &ft
	}
	return resp
}

// FromContributions builds the list envelope. Total skips soft-deleted records.
func FromContributions(records []*models.Contribution) *ContributionListResponse {
	out := make([]*ContributionResponse, 0, len(records))
	for _, c := range records {
		out = append(out, FromContribution(c))
	}
	return &ContributionListResponse{
		Contributions: out,
		Count:         len(out),
		Total:         models.Sum(records),
	}
}
