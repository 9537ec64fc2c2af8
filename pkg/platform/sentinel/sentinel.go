package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, locks and publishers return
// these (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: entity does not exist in store
//   - ErrConflict: write would violate a uniqueness rule (one snapshot per user)
//   - ErrInvalidState: entity in wrong state for requested operation
//   - ErrUnavailable: backend or lock temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
