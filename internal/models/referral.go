package models

import "time"

// Referral фиксирует связь «кто кого привёл».
// Запись чисто информационная и ни с чем не сверяется.
type Referral struct {
	ID             int64
	UserID         int64
	ReferredUserID int64
	CreatedAt      time.Time
}

// Admin представляет учётную запись администратора панели.
type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
