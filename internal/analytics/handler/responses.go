package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"nestegg/internal/analytics/models"
)

type YearTotalResponse struct {
	Year  int             `json:"year"`
	Total decimal.Decimal `json:"total"`
}

type SummaryResponse struct {
	TotalBalance         decimal.Decimal     `json:"total_balance"`
	AvailableBalance     decimal.Decimal     `json:"available_balance"`
	PublicSystemTotal    decimal.Decimal     `json:"public_system_total"`
	PrivateManagerTotal  decimal.Decimal     `json:"private_manager_total"`
	MonthlyProjection    decimal.Decimal     `json:"monthly_projection"`
	CurrentYearTotal     decimal.Decimal     `json:"current_year_total"`
	YearlyTotals         []YearTotalResponse `json:"yearly_totals"`
	YearsContributed     int                 `json:"years_contributed"`
	PublicSystemStatus   string              `json:"public_system_status"`
	PrivateManagerStatus string              `json:"private_manager_status"`
}

type ComparativeResponse struct {
	PublicSystem        decimal.Decimal `json:"onp"`
	PrivateManager      decimal.Decimal `json:"afp"`
	Total               decimal.Decimal `json:"total"`
	PublicSystemShare   decimal.Decimal `json:"onp_percentage"`
	PrivateManagerShare decimal.Decimal `json:"afp_percentage"`
}

type ProjectionResponse struct {
	Monthly              decimal.Decimal `json:"monthly"`
	Optimistic           decimal.Decimal `json:"optimistic"`
	Conservative         decimal.Decimal `json:"conservative"`
	ConservativeDiscount decimal.Decimal `json:"conservative_discount"`
	AnnualRatePercent    decimal.Decimal `json:"annual_rate"`
	Risk                 string          `json:"risk"`
	GeneratedAt          time.Time       `json:"generated_at"`
}

type YearOverYearResponse struct {
	CurrentYear   int              `json:"current_year"`
	CurrentTotal  decimal.Decimal  `json:"current_total"`
	PreviousYear  int              `json:"previous_year"`
	PreviousTotal decimal.Decimal  `json:"previous_total"`
	VariationPct  *decimal.Decimal `json:"variation_percentage,omitempty"`
	Trend         string           `json:"trend,omitempty"`
}

type StatisticsResponse struct {
	Distribution ComparativeResponse  `json:"distribution"`
	Trend        []YearTotalResponse  `json:"trend"`
	YearOverYear YearOverYearResponse `json:"year_over_year"`
}

func FromYearTotals(in []models.YearTotal) []YearTotalResponse {
	out := make([]YearTotalResponse, 0, len(in))
	for _, yt := range in {
		out = append(out, YearTotalResponse{Year: yt.Year, Total: yt.Total})
	}
	return out
}

func FromSummary(s *models.Summary) *SummaryResponse {
	return &SummaryResponse{
		TotalBalance:         s.TotalBalance,
		AvailableBalance:     s.AvailableBalance,
		PublicSystemTotal:    s.PublicSystemTotal,
		PrivateManagerTotal:  s.PrivateManagerTotal,
		MonthlyProjection:    s.MonthlyProjection,
		CurrentYearTotal:     s.CurrentYearTotal,
		YearlyTotals:         FromYearTotals(s.YearlyTotals),
		YearsContributed:     s.YearsContributed,
		PublicSystemStatus:   string(s.PublicSystemStatus),
		PrivateManagerStatus: string(s.PrivateManagerStatus),
	}
}

func FromComparative(c *models.Comparative) ComparativeResponse {
	return ComparativeResponse{
		PublicSystem:        c.PublicSystem,
		PrivateManager:      c.PrivateManager,
		Total:               c.Total,
		PublicSystemShare:   c.PublicSystemShare,
		PrivateManagerShare: c.PrivateManagerShare,
	}
}

func FromProjection(p *models.Projection) *ProjectionResponse {
	return &ProjectionResponse{
		Monthly:              p.Monthly,
		Optimistic:           p.Optimistic,
		Conservative:         p.Conservative,
		ConservativeDiscount: p.ConservativeDiscount,
		AnnualRatePercent:    p.AnnualRatePercent,
		Risk:                 p.Risk,
		GeneratedAt:          p.GeneratedAt,
	}
}

func FromStatistics(st *models.Statistics) *StatisticsResponse {
	return &StatisticsResponse{
		Distribution: FromComparative(&st.Distribution),
		Trend:        FromYearTotals(st.Trend),
		YearOverYear: YearOverYearResponse{
			CurrentYear:   st.YearOverYear.CurrentYear,
			CurrentTotal:  st.YearOverYear.CurrentTotal,
			PreviousYear:  st.YearOverYear.PreviousYear,
			PreviousTotal: st.YearOverYear.PreviousTotal,
			VariationPct:  st.YearOverYear.VariationPct,
			Trend:         string(st.YearOverYear.Trend),
		},
	}
}
