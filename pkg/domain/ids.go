// Package domain holds typed identifiers and small domain primitives shared
// across bounded contexts.
package domain

import (
	"github.com/google/uuid"

	dErrors "nestegg/pkg/domain-errors"
)

// Typed identifiers. Each wraps a UUID so a ContributionID can never be passed
// where a UserID is expected.
type (
	UserID         uuid.UUID
	ContributionID uuid.UUID
	InstitutionID  uuid.UUID
	FundTypeID     uuid.UUID
	SnapshotID     uuid.UUID
	PolicyID       uuid.UUID
	PaymentID      uuid.UUID
	ProcedureID    uuid.UUID
	HistoryEntryID uuid.UUID
)

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return u, nil
}

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user ID")
	return UserID(u), err
}

func ParseContributionID(s string) (ContributionID, error) {
	u, err := parseUUID(s, "contribution ID")
	return ContributionID(u), err
}

func ParseInstitutionID(s string) (InstitutionID, error) {
	u, err := parseUUID(s, "institution ID")
	return InstitutionID(u), err
}

func ParseFundTypeID(s string) (FundTypeID, error) {
	u, err := parseUUID(s, "fund type ID")
	return FundTypeID(u), err
}

func ParsePolicyID(s string) (PolicyID, error) {
	u, err := parseUUID(s, "policy ID")
	return PolicyID(u), err
}

func (id UserID) String() string         { return uuid.UUID(id).String() }
func (id ContributionID) String() string { return uuid.UUID(id).String() }
func (id InstitutionID) String() string  { return uuid.UUID(id).String() }
func (id FundTypeID) String() string     { return uuid.UUID(id).String() }
func (id SnapshotID) String() string     { return uuid.UUID(id).String() }
func (id PolicyID) String() string       { return uuid.UUID(id).String() }
func (id PaymentID) String() string      { return uuid.UUID(id).String() }
func (id ProcedureID) String() string    { return uuid.UUID(id).String() }
func (id HistoryEntryID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id ContributionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id InstitutionID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id FundTypeID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id SnapshotID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
