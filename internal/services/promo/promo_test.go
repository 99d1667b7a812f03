package promo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-access-bot/internal/models"
	"github.com/magabrotheeeer/course-access-bot/internal/storage/repository"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) GetPromoCodeByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromoCode), args.Error(1)
}

func intPtr(v int) *int { return &v }

func TestNormalize(t *testing.T) {
	assert.Equal(t, "SALE50", Normalize("  sale50  "))
	assert.Equal(t, "ВЕСНА", Normalize("весна"))
}

func TestRedeem(t *testing.T) {
	t.Run("applies discount to base price", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("GetPromoCodeByCode", mock.Anything, "SALE50").
			Return(&models.PromoCode{Code: "SALE50", DiscountPercent: 50, IsActive: true}, nil)

		quote, err := New(repo).Redeem(context.Background(), " sale50 ")

		require.NoError(t, err)
		assert.Equal(t, 750, quote.FinalPrice)
		assert.Equal(t, "SALE50", quote.Promo.Code)
	})

	t.Run("unknown code", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("GetPromoCodeByCode", mock.Anything, "NOPE").
			Return(nil, repository.ErrNotFound)

		_, err := New(repo).Redeem(context.Background(), "nope")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("inactive code", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("GetPromoCodeByCode", mock.Anything, "OLD").
			Return(&models.PromoCode{Code: "OLD", DiscountPercent: 10, IsActive: false}, nil)

		_, err := New(repo).Redeem(context.Background(), "old")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("exhausted code", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("GetPromoCodeByCode", mock.Anything, "LIMITED").
			Return(&models.PromoCode{
				Code:            "LIMITED",
				DiscountPercent: 20,
				IsActive:        true,
				UsedCount:       3,
				MaxUses:         intPtr(3),
			}, nil)

		_, err := New(repo).Redeem(context.Background(), "limited")

		assert.ErrorIs(t, err, ErrExhausted)
	})

	t.Run("unlimited code ignores used count", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("GetPromoCodeByCode", mock.Anything, "FOREVER").
			Return(&models.PromoCode{
				Code:            "FOREVER",
				DiscountPercent: 30,
				IsActive:        true,
				UsedCount:       1000,
			}, nil)

		quote, err := New(repo).Redeem(context.Background(), "forever")

		require.NoError(t, err)
		assert.Equal(t, 1050, quote.FinalPrice)
	})
}
