package handler

import (
	"time"

	"github.com/shopspring/decimal"

	activityhandler "nestegg/internal/activity/handler"
	activitymodels "nestegg/internal/activity/models"
	alertshandler "nestegg/internal/alerts/handler"
	alertsmodels "nestegg/internal/alerts/models"
	analyticshandler "nestegg/internal/analytics/handler"
	analyticsmodels "nestegg/internal/analytics/models"
	coveragemodels "nestegg/internal/coverage/models"
	"nestegg/internal/dashboard/models"
)

type SectionResponse[T any] struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   *T     `json:"data,omitempty"`
}

func section[S, T any](s models.Section[S], render func(S) T) SectionResponse[T] {
	out := SectionResponse[T]{Status: string(s.Status), Error: s.Error}
	if !s.Failed() {
		data := render(s.Data)
		out.Data = &data
	}
	return out
}

type ProfileResponse struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	NationalID string `json:"national_id"`
}

type BalanceResponse struct {
	Total     decimal.Decimal `json:"total"`
	Available decimal.Decimal `json:"available"`
}

type CoverageResponse struct {
	TotalPolicies       int             `json:"total_policies"`
	ActivePolicies      int             `json:"active_policies"`
	MonthlyPremiumTotal decimal.Decimal `json:"monthly_premium_total"`
	InsuredTotal        decimal.Decimal `json:"insured_total"`
}

type RegimeResponse struct {
	Regime       string     `json:"regime"`
	FundManager  string     `json:"fund_manager"`
	CUSPP        string     `json:"cuspp"`
	AffiliatedOn *time.Time `json:"affiliated_on,omitempty"`
}

type DashboardResponse struct {
	UserID       string                                                `json:"user_id"`
	GeneratedAt  time.Time                                             `json:"generated_at"`
	Partial      bool                                                  `json:"partial"`
	Profile      SectionResponse[ProfileResponse]                      `json:"profile"`
	Balance      SectionResponse[BalanceResponse]                      `json:"balance"`
	Coverage     SectionResponse[CoverageResponse]                     `json:"coverage"`
	Alerts       SectionResponse[alertshandler.ReportResponse]         `json:"alerts"`
	Activity     SectionResponse[activityhandler.FeedResponse]         `json:"activity"`
	YearlyTotals SectionResponse[[]analyticshandler.YearTotalResponse] `json:"yearly_totals"`
	Regime       SectionResponse[RegimeResponse]                       `json:"regime"`
}

func FromReport(r *models.Report) *DashboardResponse {
	return &DashboardResponse{
		UserID:      r.UserID.String(),
		GeneratedAt: r.GeneratedAt,
		Partial:     r.Partial,
		Profile: section(r.Profile, func(p models.ProfileSummary) ProfileResponse {
			return ProfileResponse{FullName: p.FullName, Email: p.Email, NationalID: p.NationalID}
		}),
		Balance: section(r.Balance, func(b models.BalanceFigures) BalanceResponse {
			return BalanceResponse{Total: b.Total, Available: b.Available}
		}),
		Coverage: section(r.Coverage, func(c coveragemodels.Summary) CoverageResponse {
			return CoverageResponse{
				TotalPolicies:       c.TotalPolicies,
				ActivePolicies:      c.ActivePolicies,
				MonthlyPremiumTotal: c.MonthlyPremiumTotal,
				InsuredTotal:        c.InsuredTotal,
			}
		}),
		Alerts: section(r.Alerts, func(a alertsmodels.Report) alertshandler.ReportResponse {
			return *alertshandler.FromReport(&a)
		}),
		Activity: section(r.Activity, func(events []activitymodels.Event) activityhandler.FeedResponse {
			return *activityhandler.FromEvents(events)
		}),
		YearlyTotals: section(r.YearlyTotals, func(totals []analyticsmodels.YearTotal) []analyticshandler.YearTotalResponse {
			return analyticshandler.FromYearTotals(totals)
		}),
		Regime: section(r.Regime, func(ri models.RegimeInfo) RegimeResponse {
			return RegimeResponse{
				Regime:       string(ri.Regime),
				FundManager:  ri.FundManager,
				CUSPP:        ri.CUSPP,
				AffiliatedOn: ri.AffiliatedOn,
			}
		}),
	}
}
