package botstate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-access-bot/internal/models"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("unknown chat returns idle", func(t *testing.T) {
		state, err := store.Get(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, models.StepIdle, state.Step)
	})

	t.Run("set and get", func(t *testing.T) {
		err := store.Set(ctx, 42, models.DialogState{
			Step:          models.StepAwaitingEmail,
			NewTelegramID: 42,
			NewUsername:   "alice",
		})
		require.NoError(t, err)

		state, err := store.Get(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, models.StepAwaitingEmail, state.Step)
		assert.Equal(t, int64(42), state.NewTelegramID)
		assert.Equal(t, "alice", state.NewUsername)

		// Сосед не затронут
		other, err := store.Get(ctx, 43)
		require.NoError(t, err)
		assert.Equal(t, models.StepIdle, other.Step)
	})

	t.Run("clear resets to idle", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, 44, models.DialogState{Step: models.StepAwaitingPromoCode}))
		require.NoError(t, store.Clear(ctx, 44))

		state, err := store.Get(ctx, 44)
		require.NoError(t, err)
		assert.Equal(t, models.StepIdle, state.Step)
	})

	t.Run("set overwrites previous state", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, 45, models.DialogState{Step: models.StepAwaitingEmail}))
		require.NoError(t, store.Set(ctx, 45, models.DialogState{Step: models.StepAwaitingPromoCode}))

		state, err := store.Get(ctx, 45)
		require.NoError(t, err)
		assert.Equal(t, models.StepAwaitingPromoCode, state.Step)
	})
}
