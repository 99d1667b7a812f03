package models

import "time"

// AccessOutcome — результат проверки доступа пользователя.
type AccessOutcome int

const (
	// OutcomeNotRegistered — пользователь не найден, не указал email
	// или деактивирован; его нужно направить на регистрацию,
	// а не показывать отказ.
	OutcomeNotRegistered AccessOutcome = iota
	// OutcomeGranted — доступ разрешён.
	OutcomeGranted
	// OutcomeDenied — пользователь зарегистрирован и активен,
	// но не имеет ни записи в белом списке, ни действующей подписки.
	OutcomeDenied
)

// AccessReason — основание, по которому доступ был разрешён.
type AccessReason int

const (
	// ReasonNone — доступ не разрешён.
	ReasonNone AccessReason = iota
	// ReasonWhitelist — пользователь в белом списке.
	ReasonWhitelist
	// ReasonSubscription — у пользователя есть действующая подписка.
	ReasonSubscription
)

// AccessDecision — решение о доступе для одного пользователя.
// User заполнен для всех исходов, кроме OutcomeNotRegistered без записи.
// ExpiresAt и AutoRenewal имеют смысл только при ReasonSubscription.
type AccessDecision struct {
	Outcome     AccessOutcome
	Reason      AccessReason
	User        *User
	ExpiresAt   time.Time
	AutoRenewal bool
}

// Granted сообщает, разрешён ли доступ.
func (d AccessDecision) Granted() bool {
	return d.Outcome == OutcomeGranted
}
