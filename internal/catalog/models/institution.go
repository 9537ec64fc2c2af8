package models

import (
	"strings"
	"time"

	id "nestegg/pkg/domain"
)

// InstitutionType classifies a pension-system entity.
type InstitutionType string

const (
	// InstitutionTypePublicSystem is the state-run pension system.
	InstitutionTypePublicSystem InstitutionType = "public_system"
	// InstitutionTypePrivateManager is a privately managed pension fund.
	InstitutionTypePrivateManager InstitutionType = "private_manager"
	InstitutionTypeOther          InstitutionType = "other"
)

func (t InstitutionType) IsValid() bool {
	switch t {
	case InstitutionTypePublicSystem, InstitutionTypePrivateManager, InstitutionTypeOther:
		return true
	}
	return false
}

// Institution is a pension-system entity contributions can be attributed to.
// Catalog order (CreatedAt, then insertion) defines "first" for attribution.
type Institution struct {
	ID        id.InstitutionID `json:"id"`
	Name      string           `json:"name"`
	Type      InstitutionType  `json:"type"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

// NameContains reports whether the institution name contains fragment,
// ignoring case.
func (i *Institution) NameContains(fragment string) bool {
	if fragment == "" {
		return false
	}
	return strings.Contains(strings.ToUpper(i.Name), strings.ToUpper(strings.TrimSpace(fragment)))
}
