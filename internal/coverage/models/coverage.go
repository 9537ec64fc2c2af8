// Package models holds the insurance coverage records (policies, premium
// payments, claim procedures) owned by the insurance back office. This module
// reads them for alerts and dashboards.
package models

import (
	"time"

	"github.com/shopspring/decimal"

	id "nestegg/pkg/domain"
)

type PolicyStatus string

const (
	PolicyStatusActive    PolicyStatus = "active"
	PolicyStatusInForce   PolicyStatus = "in_force"
	PolicyStatusExpired   PolicyStatus = "expired"
	PolicyStatusCancelled PolicyStatus = "cancelled"
)

type Policy struct {
	ID             id.PolicyID
	UserID         id.UserID
	Number         string
	Status         PolicyStatus
	StartsOn       time.Time
	ExpiresOn      time.Time
	InsuredAmount  decimal.Decimal
	MonthlyPremium decimal.Decimal
}

// IsActive reports whether the policy currently provides coverage.
func (p *Policy) IsActive() bool {
	return p.Status == PolicyStatusActive || p.Status == PolicyStatusInForce
}

// ExpiresWithin reports whether an active policy expires between today and
// today+days, both inclusive, comparing calendar dates.
func (p *Policy) ExpiresWithin(today time.Time, days int) bool {
	if !p.IsActive() {
		return false
	}
	expires := dateOf(p.ExpiresOn)
	start := dateOf(today)
	end := start.AddDate(0, 0, days)
	return !expires.Before(start) && !expires.After(end)
}

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusOverdue PaymentStatus = "overdue"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusVoided  PaymentStatus = "voided"
)

// Payment is one premium installment of a policy.
type Payment struct {
	ID          id.PaymentID
	PolicyID    id.PolicyID
	UserID      id.UserID
	Installment int
	AmountPaid  decimal.Decimal
	PaidAt      *time.Time
	Status      PaymentStatus
}

func (p *Payment) IsPending() bool {
	return p.Status == PaymentStatusPending
}

type ProcedureStatus string

const (
	ProcedureStatusPending   ProcedureStatus = "pending"
	ProcedureStatusInProcess ProcedureStatus = "in_process"
	ProcedureStatusResolved  ProcedureStatus = "resolved"
	ProcedureStatusRejected  ProcedureStatus = "rejected"
)

// OpenProcedureStatuses are the statuses of procedures still awaiting resolution.
var OpenProcedureStatuses = []ProcedureStatus{ProcedureStatusPending, ProcedureStatusInProcess}

// Procedure is a claim or administrative request filed against a policy.
type Procedure struct {
	ID          id.ProcedureID
	UserID      id.UserID
	PolicyID    *id.PolicyID
	Kind        string
	Status      ProcedureStatus
	Priority    string
	RequestedAt time.Time
}

func (p *Procedure) IsOpen() bool {
	return p.Status == ProcedureStatusPending || p.Status == ProcedureStatusInProcess
}

// Summary aggregates a user's policies for the dashboard.
type Summary struct {
	TotalPolicies       int
	ActivePolicies      int
	MonthlyPremiumTotal decimal.Decimal
	InsuredTotal        decimal.Decimal
}

// Summarize counts every policy and sums premiums and insured amounts over
// active ones only.
func Summarize(policies []*Policy) Summary {
	sum := Summary{
		TotalPolicies:       len(policies),
		MonthlyPremiumTotal: decimal.Zero,
		InsuredTotal:        decimal.Zero,
	}
	for _, p := range policies {
		if !p.IsActive() {
			continue
		}
		sum.ActivePolicies++
		sum.MonthlyPremiumTotal = sum.MonthlyPremiumTotal.Add(p.MonthlyPremium)
		sum.InsuredTotal = sum.InsuredTotal.Add(p.InsuredAmount)
	}
	return sum
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
