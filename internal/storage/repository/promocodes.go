package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/course-access-bot/internal/models"
)

const promoColumns = `id, code, discount_percent, is_active, created_at, used_count, max_uses`

func scanPromoCode(row interface{ Scan(...any) error }) (*models.PromoCode, error) {
	promo := &models.PromoCode{}
	var maxUses sql.NullInt64
	if err := row.Scan(&promo.ID, &promo.Code, &promo.DiscountPercent, &promo.IsActive,
		&promo.CreatedAt, &promo.UsedCount, &maxUses); err != nil {
		return nil, err
	}
	if maxUses.Valid {
		v := int(maxUses.Int64)
		promo.MaxUses = &v
	}
	return promo, nil
}

// GetPromoCodeByCode возвращает промокод по его коду.
// Код должен быть уже нормализован (верхний регистр).
func (s *Storage) GetPromoCodeByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	const op = "storage.GetPromoCodeByCode"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE code = $1`
	promo, err := scanPromoCode(s.DB.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return promo, nil
}

// CreatePromoCode сохраняет новый промокод и возвращает его ID.
func (s *Storage) CreatePromoCode(ctx context.Context, code string, discountPercent int, maxUses *int) (int64, error) {
	const op = "storage.CreatePromoCode"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO promo_codes (code, discount_percent, max_uses)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query, code, discountPercent, maxUses).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// TogglePromoCode инвертирует флаг активности промокода и возвращает новое значение.
func (s *Storage) TogglePromoCode(ctx context.Context, id int64) (bool, error) {
	const op = "storage.TogglePromoCode"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE promo_codes SET is_active = NOT is_active WHERE id = $1 RETURNING is_active`
	var isActive bool
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&isActive)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return isActive, nil
}

// ListPromoCodes возвращает все промокоды.
func (s *Storage) ListPromoCodes(ctx context.Context) ([]*models.PromoCode, error) {
	const op = "storage.ListPromoCodes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + promoColumns + ` FROM promo_codes ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PromoCode
	for rows.Next() {
		promo, err := scanPromoCode(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, promo)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
