package models

import "time"

// Subscription представляет оплаченный период доступа пользователя.
// У пользователя может быть несколько записей (история); текущей считается
// запись с самой поздней датой окончания, которая ещё в будущем.
type Subscription struct {
	ID            int64
	UserID        int64
	StartDate     time.Time
	EndDate       time.Time
	PaymentAmount *int
	PaymentID     *string
	AutoRenewal   bool
}

// WhitelistEntry даёт бессрочный доступ по telegram id,
// независимо от подписок.
type WhitelistEntry struct {
	ID         int64
	TelegramID int64
	AddedDate  time.Time
}
