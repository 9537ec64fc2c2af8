// Package models builds the plain-text financial context handed to the
// assistant alongside a user's question.
package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	profilemodels "nestegg/internal/profile/models"
)

const (
	CurrencySymbol = "S/"
	NotAffiliated  = "Not affiliated"
	NotSpecified   = "Not specified"
	// EmptyContext is rendered for a user with nothing on record.
	EmptyContext = "No financial data registered"
)

type FinancialContext struct {
	Regime            profilemodels.Regime
	FundManager       string
	TotalBalance      decimal.Decimal
	ContributionCount int
	PolicyCount       int
	ActivePolicies    int
}

func (c *FinancialContext) IsEmpty() bool {
	return c.Regime == profilemodels.RegimeUnspecified &&
		c.FundManager == "" &&
		!c.TotalBalance.IsPositive() &&
		c.ContributionCount == 0 &&
		c.PolicyCount == 0
}

// Render writes one "- label: value" line per known fact. Balance,
// contributions and policies are omitted when the user has none.
func (c *FinancialContext) Render() string {
	if c == nil || c.IsEmpty() {
		return EmptyContext
	}

	var b strings.Builder
	regime := string(c.Regime)
	if regime == "" {
		regime = NotSpecified
	}
	fmt.Fprintf(&b, "- Regime: %s\n", regime)

	manager := c.FundManager
	if manager == "" {
		manager = NotAffiliated
	}
	fmt.Fprintf(&b, "- Fund manager: %s\n", manager)

	if c.TotalBalance.IsPositive() {
		fmt.Fprintf(&b, "- Total balance: %s %s\n", CurrencySymbol, c.TotalBalance.StringFixed(2))
	}
	if c.ContributionCount > 0 {
		fmt.Fprintf(&b, "- Contributions registered: %d\n", c.ContributionCount)
	}
	if c.PolicyCount > 0 {
		fmt.Fprintf(&b, "- Active policies: %d\n", c.ActivePolicies)
	}
	return b.String()
}
