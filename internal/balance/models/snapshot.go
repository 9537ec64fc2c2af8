package models

import (
	"time"

	"github.com/shopspring/decimal"

	id "nestegg/pkg/domain"
)

// Status of a balance snapshot. Only active snapshots count toward totals.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Fixed ratios applied to the contribution total on every recompute.
var (
	AvailableRatio      = decimal.RequireFromString("0.90")
	CapitalizationRatio = decimal.RequireFromString("0.60")
	VoluntaryRatio      = decimal.RequireFromString("0.40")
	YieldRate           = decimal.RequireFromString("0.05")
)

// Figures are the derived balance amounts for a given contribution total.
type Figures struct {
	Total            decimal.Decimal
	Available        decimal.Decimal
	Capitalization   decimal.Decimal
	Voluntary        decimal.Decimal
	AccumulatedYield decimal.Decimal
}

// Derive computes every figure from total alone.
func Derive(total decimal.Decimal) Figures {
	return Figures{
		Total:            total,
		Available:        total.Mul(AvailableRatio),
		Capitalization:   total.Mul(CapitalizationRatio),
		Voluntary:        total.Mul(VoluntaryRatio),
		AccumulatedYield: total.Mul(YieldRate),
	}
}

// Snapshot is the materialized balance of one user.
//
// Invariants:
//   - Total equals the sum of the user's live contributions at the last recompute
//   - Available, Capitalization, Voluntary and AccumulatedYield are Derive(Total)
//   - At most one snapshot per user
//   - Version increases by one on every write
type Snapshot struct {
	ID         id.SnapshotID
	UserID     id.UserID
	FundTypeID *id.FundTypeID
	Figures
	CutoffOn  time.Time
	UpdatedOn time.Time
	Status    Status
	Version   int64
}

func (s *Snapshot) IsActive() bool {
	return s.Status == StatusActive
}

// Apply overwrites the derived figures and dates. The fund type is replaced only
// when one is provided.
func (s *Snapshot) Apply(f Figures, fundType *id.FundTypeID, today time.Time) {
	s.Figures = f
	if fundType != nil {
		ft := *fundType
		s.FundTypeID = &ft
	}
	s.CutoffOn = today
	s.UpdatedOn = today
}
