package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-access-bot/internal/models"
)

func intPtr(v int) *int { return &v }

func TestStorage_Subscriptions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	userID, err := storage.CreateUser(ctx, 555, strPtr("subuser"), "sub@example.com")
	require.NoError(t, err)

	t.Run("no current subscription", func(t *testing.T) {
		_, err := storage.FindCurrentSubscription(ctx, userID, now)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("current is latest by end date", func(t *testing.T) {
		paymentID := uuid.New().String()

		_, err := storage.CreateSubscription(ctx, models.Subscription{
			UserID:        userID,
			StartDate:     now.AddDate(0, -2, 0),
			EndDate:       now.AddDate(0, -1, 0),
			PaymentAmount: intPtr(1500),
			AutoRenewal:   true,
		})
		require.NoError(t, err)

		currentID, err := storage.CreateSubscription(ctx, models.Subscription{
			UserID:        userID,
			StartDate:     now,
			EndDate:       now.AddDate(0, 1, 0),
			PaymentAmount: intPtr(750),
			PaymentID:     &paymentID,
			AutoRenewal:   true,
		})
		require.NoError(t, err)

		sub, err := storage.FindCurrentSubscription(ctx, userID, now)
		require.NoError(t, err)
		assert.Equal(t, currentID, sub.ID)
		require.NotNil(t, sub.PaymentAmount)
		assert.Equal(t, 750, *sub.PaymentAmount)
		require.NotNil(t, sub.PaymentID)
		assert.Equal(t, paymentID, *sub.PaymentID)
		assert.True(t, sub.AutoRenewal)
	})

	t.Run("disable auto renewal", func(t *testing.T) {
		sub, err := storage.FindCurrentSubscription(ctx, userID, now)
		require.NoError(t, err)

		err = storage.DisableAutoRenewal(ctx, sub.ID)
		require.NoError(t, err)

		sub, err = storage.FindCurrentSubscription(ctx, userID, now)
		require.NoError(t, err)
		assert.False(t, sub.AutoRenewal)
	})

	t.Run("list by calendar day", func(t *testing.T) {
		otherID, err := storage.CreateUser(ctx, 556, strPtr("dayuser"), "day@example.com")
		require.NoError(t, err)

		day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		_, err = storage.CreateSubscription(ctx, models.Subscription{
			UserID:    otherID,
			StartDate: day.Add(10 * time.Hour),
			EndDate:   day.AddDate(0, 1, 0),
		})
		require.NoError(t, err)

		started, err := storage.ListSubscriptionsStartingOn(ctx, day)
		require.NoError(t, err)
		require.Len(t, started, 1)
		assert.Equal(t, otherID, started[0].UserID)

		// Следующий день уже вне полуоткрытого интервала
		started, err = storage.ListSubscriptionsStartingOn(ctx, day.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Empty(t, started)

		ending, err := storage.ListSubscriptionsEndingOn(ctx, day.AddDate(0, 1, 0))
		require.NoError(t, err)
		require.Len(t, ending, 1)
		assert.Equal(t, otherID, ending[0].UserID)
	})
}
