package models

// DialogStep — шаг диалога с пользователем. Одновременно у одного чата
// может быть только один активный шаг.
type DialogStep string

const (
	// StepIdle — бот не ждёт от пользователя свободного ввода.
	StepIdle DialogStep = "idle"
	// StepAwaitingEmail — бот ждёт email для регистрации или обновления.
	StepAwaitingEmail DialogStep = "awaiting_email"
	// StepAwaitingPromoCode — бот ждёт промокод.
	StepAwaitingPromoCode DialogStep = "awaiting_promo"
)

// DialogState — состояние диалога одного чата.
//
// Для шага StepAwaitingEmail заполнен ровно один из вариантов:
// либо пара NewTelegramID/NewUsername (создание нового пользователя),
// либо UserIDToUpdate (обновление email существующего).
type DialogState struct {
	Step           DialogStep `json:"step"`
	NewTelegramID  int64      `json:"new_telegram_id,omitempty"`
	NewUsername    string     `json:"new_username,omitempty"`
	UserIDToUpdate int64      `json:"user_id_to_update,omitempty"`
	// ReferrerTelegramID — telegram id пригласившего из deep-link параметра.
	// Реферальная связь записывается после успешной регистрации.
	ReferrerTelegramID int64 `json:"referrer_telegram_id,omitempty"`
}

// IdleState возвращает состояние без ожидаемого ввода.
func IdleState() DialogState {
	return DialogState{Step: StepIdle}
}
