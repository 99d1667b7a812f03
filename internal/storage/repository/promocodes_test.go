package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_PromoCodesWhitelistReferrals(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("promocodes", func(t *testing.T) {
		id, err := storage.CreatePromoCode(ctx, "SALE50", 50, intPtr(3))
		require.NoError(t, err)

		promo, err := storage.GetPromoCodeByCode(ctx, "SALE50")
		require.NoError(t, err)
		assert.Equal(t, id, promo.ID)
		assert.Equal(t, 50, promo.DiscountPercent)
		assert.True(t, promo.IsActive)
		assert.Equal(t, 0, promo.UsedCount)
		require.NotNil(t, promo.MaxUses)
		assert.Equal(t, 3, *promo.MaxUses)

		_, err = storage.GetPromoCodeByCode(ctx, "MISSING")
		require.ErrorIs(t, err, ErrNotFound)

		// Без лимита применений
		_, err = storage.CreatePromoCode(ctx, "FOREVER", 10, nil)
		require.NoError(t, err)

		promo, err = storage.GetPromoCodeByCode(ctx, "FOREVER")
		require.NoError(t, err)
		assert.Nil(t, promo.MaxUses)

		active, err := storage.TogglePromoCode(ctx, id)
		require.NoError(t, err)
		assert.False(t, active)

		active, err = storage.TogglePromoCode(ctx, id)
		require.NoError(t, err)
		assert.True(t, active)

		_, err = storage.TogglePromoCode(ctx, 999999)
		require.ErrorIs(t, err, ErrNotFound)

		all, err := storage.ListPromoCodes(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("whitelist", func(t *testing.T) {
		ok, err := storage.IsWhitelisted(ctx, 777)
		require.NoError(t, err)
		assert.False(t, ok)

		id, err := storage.AddWhitelistEntry(ctx, 777)
		require.NoError(t, err)

		ok, err = storage.IsWhitelisted(ctx, 777)
		require.NoError(t, err)
		assert.True(t, ok)

		entries, err := storage.ListWhitelist(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, int64(777), entries[0].TelegramID)

		deleted, err := storage.DeleteWhitelistEntry(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, deleted)

		deleted, err = storage.DeleteWhitelistEntry(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 0, deleted)

		ok, err = storage.IsWhitelisted(ctx, 777)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("referrals", func(t *testing.T) {
		referrerID, err := storage.CreateUser(ctx, 801, strPtr("referrer"), "referrer@example.com")
		require.NoError(t, err)
		referredID, err := storage.CreateUser(ctx, 802, strPtr("referred"), "referred@example.com")
		require.NoError(t, err)

		_, err = storage.CreateReferral(ctx, referrerID, referredID)
		require.NoError(t, err)

		refs, err := storage.ListReferrals(ctx)
		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, referrerID, refs[0].UserID)
		assert.Equal(t, referredID, refs[0].ReferredUserID)
	})

	t.Run("admins", func(t *testing.T) {
		err := storage.UpsertAdmin(ctx, "admin", "hash-one")
		require.NoError(t, err)

		admin, err := storage.GetAdminByUsername(ctx, "admin")
		require.NoError(t, err)
		assert.Equal(t, "hash-one", admin.PasswordHash)

		// Повторный посев обновляет хеш, а не дублирует запись
		err = storage.UpsertAdmin(ctx, "admin", "hash-two")
		require.NoError(t, err)

		admin, err = storage.GetAdminByUsername(ctx, "admin")
		require.NoError(t, err)
		assert.Equal(t, "hash-two", admin.PasswordHash)

		_, err = storage.GetAdminByUsername(ctx, "ghost")
		require.ErrorIs(t, err, ErrNotFound)
	})
}
