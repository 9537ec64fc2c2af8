// Package models defines the query-history log: one entry per lookup a user
// ran (balance checks, projections, insurance queries).
package models

import (
	"strings"
	"time"

	id "nestegg/pkg/domain"
	dErrors "nestegg/pkg/domain-errors"
)

type Kind string

const (
	KindContribution Kind = "contribution"
	KindInsurance    Kind = "insurance"
	KindYield        Kind = "yield"
	KindProjection   Kind = "projection"
	KindOther        Kind = "other"
)

type Result string

const (
	ResultSuccess Result = "success"
	ResultError   Result = "error"
)

// Entry is immutable once appended.
type Entry struct {
	ID         id.HistoryEntryID
	UserID     id.UserID
	Kind       Kind
	Detail     string
	Result     Result
	OccurredAt time.Time
}

// RecordRequest is what a client reports; the server assigns ID and time.
type RecordRequest struct {
	Kind   Kind
	Detail string
	Result Result
}

func (r *RecordRequest) Normalize() {
	if r == nil {
		return
	}
	r.Kind = Kind(strings.ToLower(strings.TrimSpace(string(r.Kind))))
	r.Result = Result(strings.ToLower(strings.TrimSpace(string(r.Result))))
	r.Detail = strings.TrimSpace(r.Detail)
	if r.Kind == "" {
		r.Kind = KindOther
	}
	if r.Result == "" {
		r.Result = ResultSuccess
	}
}

func (r *RecordRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if len(r.Detail) > 500 {
		return dErrors.New(dErrors.CodeValidation, "detail must be 500 characters or less")
	}
	switch r.Kind {
	case KindContribution, KindInsurance, KindYield, KindProjection, KindOther:
	default:
		return dErrors.New(dErrors.CodeValidation, "kind must be one of contribution, insurance, yield, projection, other")
	}
	if r.Result != ResultSuccess && r.Result != ResultError {
		return dErrors.New(dErrors.CodeValidation, "result must be success or error")
	}
	return nil
}
