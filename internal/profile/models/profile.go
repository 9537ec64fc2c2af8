package models

import (
	"time"

	id "nestegg/pkg/domain"
)

// Regime is the pension system a user is affiliated to.
type Regime string

const (
	RegimeUnspecified    Regime = ""
	RegimePublicSystem   Regime = "public_system"
	RegimePrivateManager Regime = "private_manager"
)

func (r Regime) IsValid() bool {
	switch r {
	case RegimeUnspecified, RegimePublicSystem, RegimePrivateManager:
		return true
	}
	return false
}

// FundManagerRef points at the private fund manager a user chose.
type FundManagerRef struct {
	ID   id.InstitutionID `json:"id"`
	Name string           `json:"name"`
}

// UserProfile is owned by the identity service; this module only reads it.
// Regime and FundManager may change at any time and are read fresh on every
// contribution write.
type UserProfile struct {
	ID           id.UserID       `json:"id"`
	FullName     string          `json:"full_name"`
	NationalID   string          `json:"national_id"`
	Email        string          `json:"email"`
	Regime       Regime          `json:"regime"`
	FundManager  *FundManagerRef `json:"fund_manager,omitempty"`
	CUSPP        string          `json:"cuspp"`
	AffiliatedOn *time.Time      `json:"affiliated_on,omitempty"`
}

// FundManagerName returns the manager name or "" when the user has none.
func (p *UserProfile) FundManagerName() string {
	if p == nil || p.FundManager == nil {
		return ""
	}
	return p.FundManager.Name
}
