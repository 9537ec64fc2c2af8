package models

import (
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindExpiringPolicies   Kind = "expiring_policies"
	KindPendingPayments    Kind = "pending_payments"
	KindPendingProcedures  Kind = "pending_procedures"
	KindStaleContributions Kind = "stale_contributions"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Display hints the client maps to icons.
const (
	HintAlertTriangle = "alert-triangle"
	HintCreditCard    = "credit-card"
	HintFileText      = "file-text"
	HintAlertCircle   = "alert-circle"
)

// Alert is one derived notice. Count is nil for alerts that are a single
// condition rather than a tally; Amount is only set for money alerts.
type Alert struct {
	Kind     Kind
	Severity Severity
	Title    string
	Message  string
	Count    *int
	Amount   *decimal.Decimal
	Hint     string
}

// Weight is the alert's contribution to Report.Total.
func (a Alert) Weight() int {
	if a.Count == nil {
		return 1
	}
	return *a.Count
}

type Report struct {
	Alerts []Alert
	Total  int
}

func NewReport(alerts []Alert) Report {
	r := Report{Alerts: alerts}
	if r.Alerts == nil {
		r.Alerts = []Alert{}
	}
	for _, a := range r.Alerts {
		r.Total += a.Weight()
	}
	return r
}
