package models

import "time"

// PromoCode представляет скидочный промокод.
// Код хранится в верхнем регистре; MaxUses == nil означает
// отсутствие ограничения на число применений.
type PromoCode struct {
	ID              int64
	Code            string
	DiscountPercent int
	IsActive        bool
	CreatedAt       time.Time
	UsedCount       int
	MaxUses         *int
}

// Redeemable сообщает, можно ли применить промокод:
// код должен быть активен и не исчерпать лимит применений.
func (p *PromoCode) Redeemable() bool {
	if !p.IsActive {
		return false
	}
	if p.MaxUses != nil && p.UsedCount >= *p.MaxUses {
		return false
	}
	return true
}
