// Package models defines the recent-activity feed shown on the dashboard.
package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	contributionmodels "nestegg/internal/contribution/models"
	historymodels "nestegg/internal/history/models"
)

// KindContribution labels events built from contribution records. History
// events carry the history entry kind.
const KindContribution = "contribution"

const (
	IconContribution = "dollar-sign"
	IconInsurance    = "shield"
	IconYield        = "trending-up"
	IconProjection   = "bar-chart"
	IconDefault      = "activity"
)

// Event is one feed item. OccurredAt is always UTC so history timestamps and
// contribution dates order against each other.
type Event struct {
	Kind        string
	Description string
	OccurredAt  time.Time
	Result      string
	Amount      *decimal.Decimal
	Icon        string
}

func IconFor(kind historymodels.Kind) string {
	switch kind {
	case historymodels.KindContribution:
		return IconContribution
	case historymodels.KindInsurance:
		return IconInsurance
	case historymodels.KindYield:
		return IconYield
	case historymodels.KindProjection:
		return IconProjection
	default:
		return IconDefault
	}
}

func FromHistory(e *historymodels.Entry) Event {
	return Event{
		Kind:        string(e.Kind),
		Description: e.Detail,
		OccurredAt:  e.OccurredAt.UTC(),
		Result:      string(e.Result),
		Icon:        IconFor(e.Kind),
	}
}

func FromContribution(c *contributionmodels.Contribution) Event {
	ev := Event{
		Kind:        KindContribution,
		Description: fmt.Sprintf("Contribution registered: %s", c.Period),
		OccurredAt:  contributionmodels.DateOnly(c.ContributedOn),
		Icon:        IconContribution,
	}
	if c.Amount.Valid {
		amount := c.Amount.Decimal
		ev.Amount = &amount
	}
	return ev
}

// SortNewestFirst orders events by OccurredAt descending, keeping input order
// for equal timestamps.
func SortNewestFirst(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].OccurredAt.After(events[j].OccurredAt)
	})
}
