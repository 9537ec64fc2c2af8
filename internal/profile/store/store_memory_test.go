package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestegg/internal/profile/models"
	id "nestegg/pkg/domain"
	"nestegg/pkg/platform/sentinel"
)

func TestInMemory(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	userID := id.UserID(uuid.New())

	_, err := s.FindByID(ctx, userID)
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	p := &models.UserProfile{
		ID:          userID,
		Regime:      models.RegimePrivateManager,
		FundManager: &models.FundManagerRef{ID: id.InstitutionID(uuid.New()), Name: "Prima"},
	}
	require.NoError(t, s.Save(ctx, p))

	// Mutating the caller's copy after save must not leak into the store.
	p.FundManager.Name = "Habitat"

	found, err := s.FindByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Prima", found.FundManagerName())
	assert.Equal(t, models.RegimePrivateManager, found.Regime)
}
