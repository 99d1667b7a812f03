// Package models содержит доменные структуры: пользователей, подписки,
// белый список, промокоды, рефералов и администраторов.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

import (
	"strings"
	"time"
)

// PlaceholderEmailPrefix — префикс временного email, который присваивается
// пользователю до того, как он укажет настоящий адрес.
const PlaceholderEmailPrefix = "temp_"

// User представляет участника сообщества.
//
// ReferralLinkOverride и ReferralStatusOverride — независимые переопределения,
// задаваемые администратором; nil означает «использовать значение по умолчанию».
type User struct {
	ID                     int64
	TelegramID             int64
	TelegramUsername       *string
	Email                  string
	RegistrationDate       time.Time
	ReferralLinkOverride   *string
	ReferralStatusOverride *bool
	IsActive               bool
}

// HasEmail сообщает, указал ли пользователь настоящий email.
// Пустое значение и значение-заглушка считаются отсутствием адреса.
func (u *User) HasEmail() bool {
	return u.Email != "" && !strings.HasPrefix(u.Email, PlaceholderEmailPrefix)
}
