package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestegg/internal/history/models"
	id "nestegg/pkg/domain"
)

func TestListByUserNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	userID := id.UserID(uuid.New())
	base := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	for i, detail := range []string{"first", "second", "third"} {
		require.NoError(t, s.Append(ctx, &models.Entry{
			ID:         id.HistoryEntryID(uuid.New()),
			UserID:     userID,
			Kind:       models.KindYield,
			Detail:     detail,
			Result:     models.ResultSuccess,
			OccurredAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, s.Append(ctx, &models.Entry{
		ID:         id.HistoryEntryID(uuid.New()),
		UserID:     id.UserID(uuid.New()),
		Detail:     "someone else",
		OccurredAt: base.Add(10 * time.Hour),
	}))

	all, err := s.ListByUser(ctx, userID, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Detail)
	assert.Equal(t, "first", all[2].Detail)

	limited, err := s.ListByUser(ctx, userID, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "second", limited[1].Detail)
}

func TestListByUserSameTimestampKeepsAppendOrderReversed(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	userID := id.UserID(uuid.New())
	at := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Append(ctx, &models.Entry{ID: id.HistoryEntryID(uuid.New()), UserID: userID, Detail: "a", OccurredAt: at}))
	require.NoError(t, s.Append(ctx, &models.Entry{ID: id.HistoryEntryID(uuid.New()), UserID: userID, Detail: "b", OccurredAt: at}))

	all, err := s.ListByUser(ctx, userID, 0)
	require.NoError(t, err)
	assert.Equal(t, "b", all[0].Detail)
}
