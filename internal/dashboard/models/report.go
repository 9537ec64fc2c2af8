// Package models defines the dashboard: one report assembled from
// independently loaded sections.
package models

import (
	"time"

	"github.com/shopspring/decimal"

	activitymodels "nestegg/internal/activity/models"
	alertsmodels "nestegg/internal/alerts/models"
	analyticsmodels "nestegg/internal/analytics/models"
	coveragemodels "nestegg/internal/coverage/models"
	profilemodels "nestegg/internal/profile/models"
	id "nestegg/pkg/domain"
)

type SectionStatus string

const (
	SectionOK    SectionStatus = "ok"
	SectionError SectionStatus = "error"
)

// Section wraps one dashboard block. Data is the zero value when Status is
// SectionError.
type Section[T any] struct {
	Status SectionStatus
	Error  string
	Data   T
}

func OK[T any](data T) Section[T] {
	return Section[T]{Status: SectionOK, Data: data}
}

// Failed records a section that could not be loaded. The message is meant
// for clients and never carries the underlying error.
func Failed[T any](message string) Section[T] {
	return Section[T]{Status: SectionError, Error: message}
}

func (s Section[T]) Failed() bool {
	return s.Status == SectionError
}

type ProfileSummary struct {
	FullName   string
	Email      string
	NationalID string
}

type BalanceFigures struct {
	Total     decimal.Decimal
	Available decimal.Decimal
}

// NotAffiliated is shown when the user has no private fund manager.
const NotAffiliated = "Not affiliated"

type RegimeInfo struct {
	Regime       profilemodels.Regime
	FundManager  string
	CUSPP        string
	AffiliatedOn *time.Time
}

func RegimeFrom(p *profilemodels.UserProfile) RegimeInfo {
	manager := p.FundManagerName()
	if manager == "" {
		manager = NotAffiliated
	}
	return RegimeInfo{
		Regime:       p.Regime,
		FundManager:  manager,
		CUSPP:        p.CUSPP,
		AffiliatedOn: p.AffiliatedOn,
	}
}

type Report struct {
	UserID       id.UserID
	GeneratedAt  time.Time
	Profile      Section[ProfileSummary]
	Balance      Section[BalanceFigures]
	Coverage     Section[coveragemodels.Summary]
	Alerts       Section[alertsmodels.Report]
	Activity     Section[[]activitymodels.Event]
	YearlyTotals Section[[]analyticsmodels.YearTotal]
	Regime       Section[RegimeInfo]
	// Partial is set when any section failed.
	Partial bool
}

// FailedSections lists the names of sections in error, in report order.
func (r *Report) FailedSections() []string {
	var out []string
	for _, s := range []struct {
		name   string
		failed bool
	}{
		{"profile", r.Profile.Failed()},
		{"balance", r.Balance.Failed()},
		{"coverage", r.Coverage.Failed()},
		{"alerts", r.Alerts.Failed()},
		{"activity", r.Activity.Failed()},
		{"yearly_totals", r.YearlyTotals.Failed()},
		{"regime", r.Regime.Failed()},
	} {
		if s.failed {
			out = append(out, s.name)
		}
	}
	return out
}
