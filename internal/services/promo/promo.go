// Package promo реализует применение промокодов к базовой цене доступа.
package promo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/course-access-bot/internal/models"
	"github.com/magabrotheeeer/course-access-bot/internal/storage/repository"
)

// BasePrice — базовая цена доступа в рублях.
const BasePrice = 1500

var (
	// ErrNotFound возвращается для неизвестного или деактивированного кода.
	ErrNotFound = errors.New("promo code not found or inactive")
	// ErrExhausted возвращается, когда лимит использований исчерпан.
	ErrExhausted = errors.New("promo code usage limit reached")
)

// Repository определяет методы хранилища для работы с промокодами.
type Repository interface {
	// GetPromoCodeByCode возвращает активный промокод по нормализованному коду.
	GetPromoCodeByCode(ctx context.Context, code string) (*models.PromoCode, error)
}

// Quote — результат успешного применения промокода.
type Quote struct {
	Promo      *models.PromoCode
	FinalPrice int
}

// Service применяет промокоды поверх хранилища.
type Service struct {
	repo Repository
}

// New создает новый Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Normalize приводит код к каноническому виду: пробелы по краям
// отбрасываются, буквы переводятся в верхний регистр.
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Redeem применяет код к базовой цене и возвращает итоговую стоимость.
// Счетчик использований здесь не увеличивается: он фиксируется только
// при фактической оплате.
func (s *Service) Redeem(ctx context.Context, raw string) (*Quote, error) {
	const op = "promo.Redeem"

	code, err := s.repo.GetPromoCodeByCode(ctx, Normalize(raw))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !code.IsActive {
		return nil, ErrNotFound
	}
	if !code.Redeemable() {
		return nil, ErrExhausted
	}

	final := int(float64(BasePrice) * (1 - float64(code.DiscountPercent)/100))
	return &Quote{Promo: code, FinalPrice: final}, nil
}
