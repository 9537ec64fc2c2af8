package domain

import (
	"fmt"
	"time"
)

// Period is a contribution accrual month in YYYY-MM form.
// This is a domain primitive that enforces validity at parse time.
type Period string

const periodLayout = "2006-01"

// ParsePeriod validates and returns a Period.
func ParsePeriod(s string) (Period, error) {
	if _, err := time.Parse(periodLayout, s); err != nil {
		return "", fmt.Errorf("invalid period %q: expected YYYY-MM", s)
	}
	return Period(s), nil
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period(t.Format(periodLayout))
}

func (p Period) String() string {
	return string(p)
}

// IsNil returns true if the period is empty.
func (p Period) IsNil() bool {
	return p == ""
}

// Year returns the calendar year of the period, or 0 when unparseable.
func (p Period) Year() int {
	t, err := time.Parse(periodLayout, string(p))
	if err != nil {
		return 0
	}
	return t.Year()
}

// MonthsBefore steps t back n calendar months, keeping the time of day. When
// the target month is shorter the day is clamped to its last day, so May 31
// minus three months is Feb 28 (or 29), never an overflow into March.
func MonthsBefore(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m-time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	return first.AddDate(0, 0, min(d, last)-1)
}
