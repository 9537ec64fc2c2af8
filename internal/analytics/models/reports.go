// Package models holds the read-only analytics reports derived from a user's
// contributions and balance snapshot.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemStatus tells whether a user has any record in a pension system.
type SystemStatus string

const (
	SystemStatusActive   SystemStatus = "active"
	SystemStatusNoRecord SystemStatus = "no_record"
)

// RiskMedium is the only risk label projections currently carry.
const RiskMedium = "medium"

// Projection constants. Retirement is assumed to pay out over 240 months.
var (
	PayoutMonths       = decimal.NewFromInt(240)
	OptimisticFactor   = decimal.RequireFromString("1.05")
	ConservativeFactor = decimal.RequireFromString("0.90")
	AnnualRatePercent  = decimal.RequireFromString("5.4")
	hundred            = decimal.NewFromInt(100)
)

type YearTotal struct {
	Year  int
	Total decimal.Decimal
}

type Summary struct {
	TotalBalance         decimal.Decimal
	AvailableBalance     decimal.Decimal
	PublicSystemTotal    decimal.Decimal
	PrivateManagerTotal  decimal.Decimal
	MonthlyProjection    decimal.Decimal
	CurrentYearTotal     decimal.Decimal
	YearlyTotals         []YearTotal
	YearsContributed     int
	PublicSystemStatus   SystemStatus
	PrivateManagerStatus SystemStatus
}

// Comparative splits lifetime contributions between the public system and
// private managers. Shares are percentages rounded to two decimals and are
// zero when Total is zero.
type Comparative struct {
	PublicSystem        decimal.Decimal
	PrivateManager      decimal.Decimal
	Total               decimal.Decimal
	PublicSystemShare   decimal.Decimal
	PrivateManagerShare decimal.Decimal
}

func NewComparative(public, private decimal.Decimal) Comparative {
	total := public.Add(private)
	c := Comparative{
		PublicSystem:        public,
		PrivateManager:      private,
		Total:               total,
		PublicSystemShare:   decimal.Zero,
		PrivateManagerShare: decimal.Zero,
	}
	if total.IsPositive() {
		c.PublicSystemShare = Percent(public, total)
		c.PrivateManagerShare = Percent(private, total)
	}
	return c
}

// Projection estimates the monthly pension the current balance would pay.
type Projection struct {
	Monthly              decimal.Decimal
	Optimistic           decimal.Decimal
	Conservative         decimal.Decimal
	ConservativeDiscount decimal.Decimal
	AnnualRatePercent    decimal.Decimal
	Risk                 string
	GeneratedAt          time.Time
}

// MonthlyPension is total spread over PayoutMonths, rounded to cents. A
// non-positive total projects zero.
func MonthlyPension(total decimal.Decimal) decimal.Decimal {
	return monthlyPension(total).Round(2)
}

func monthlyPension(total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return total.Div(PayoutMonths)
}

// NewProjection derives every scenario from the unrounded monthly figure and
// rounds each result to cents once.
func NewProjection(total decimal.Decimal, at time.Time) Projection {
	monthly := monthlyPension(total)
	conservative := monthly.Mul(ConservativeFactor).Round(2)
	return Projection{
		Monthly:              monthly.Round(2),
		Optimistic:           monthly.Mul(OptimisticFactor).Round(2),
		Conservative:         conservative,
		ConservativeDiscount: conservative,
		AnnualRatePercent:    AnnualRatePercent,
		Risk:                 RiskMedium,
		GeneratedAt:          at,
	}
}

type Trend string

const (
	TrendPositive Trend = "positive"
	TrendNegative Trend = "negative"
)

// YearOverYear compares contributions of the current and previous calendar
// years. Variation and Trend are only set when the previous year is positive.
type YearOverYear struct {
	CurrentYear   int
	CurrentTotal  decimal.Decimal
	PreviousYear  int
	PreviousTotal decimal.Decimal
	VariationPct  *decimal.Decimal
	Trend         Trend
}

func NewYearOverYear(year int, current, previous decimal.Decimal) YearOverYear {
	yoy := YearOverYear{
		CurrentYear:   year,
		CurrentTotal:  current,
		PreviousYear:  year - 1,
		PreviousTotal: previous,
	}
	if !previous.IsPositive() {
		return yoy
	}
	variation := Percent(current.Sub(previous), previous)
	yoy.VariationPct = &variation
	yoy.Trend = TrendPositive
	if variation.IsNegative() {
		yoy.Trend = TrendNegative
	}
	return yoy
}

type Statistics struct {
	Distribution Comparative
	Trend        []YearTotal
	YearOverYear YearOverYear
}

// Percent returns part/whole*100 rounded to two decimals. whole must be non-zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	return part.Mul(hundred).Div(whole).Round(2)
}
