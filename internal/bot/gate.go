package bot

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/course-access-bot/internal/lib/sl"
	"github.com/magabrotheeeer/course-access-bot/internal/models"
)

// userHandler — обработчик, которому нужен уже проверенный пользователь.
type userHandler func(ctx context.Context, chatID int64, user *models.User)

// withAccess пропускает к обработчику только пользователей с действующим
// доступом: белый список либо активная подписка. Незарегистрированных
// перенаправляет на ввод email, остальным показывает отказ.
func (b *Bot) withAccess(ctx context.Context, chatID, telegramID int64, username string, next userHandler) {
	decision, err := b.access.Resolve(ctx, telegramID)
	if err != nil {
		b.log.Error("access check failed", slog.Int64("telegram_id", telegramID), sl.Err(err))
		return
	}

	switch decision.Outcome {
	case models.OutcomeGranted:
		next(ctx, chatID, decision.User)
	case models.OutcomeDenied:
		b.log.Warn("access denied", slog.Int64("telegram_id", telegramID))
		b.reply(chatID, textNoAccess)
	default:
		b.redirectToRegistration(ctx, chatID, telegramID, username, decision.User)
	}
}

// withRegistered пропускает зарегистрированных активных пользователей
// независимо от наличия оплаченного доступа.
func (b *Bot) withRegistered(ctx context.Context, chatID, telegramID int64, username string, next userHandler) {
	decision, err := b.access.ResolveRegistered(ctx, telegramID)
	if err != nil {
		b.log.Error("registration check failed", slog.Int64("telegram_id", telegramID), sl.Err(err))
		return
	}

	if decision.Outcome == models.OutcomeGranted {
		next(ctx, chatID, decision.User)
		return
	}
	b.redirectToRegistration(ctx, chatID, telegramID, username, decision.User)
}

// redirectToRegistration просит пройти регистрацию и, если проблема
// в отсутствующем email, сразу открывает диалог его ввода. Деактивированный
// аккаунт с настоящим email получает только подсказку про /start:
// самостоятельная смена email ему не поможет.
func (b *Bot) redirectToRegistration(ctx context.Context, chatID, telegramID int64, username string, user *models.User) {
	b.log.Warn("registration required",
		slog.Int64("telegram_id", telegramID))
	b.reply(chatID, textRegisterPrompt)

	if user != nil && user.HasEmail() {
		return
	}

	state := models.DialogState{Step: models.StepAwaitingEmail}
	if user == nil {
		state.NewTelegramID = telegramID
		state.NewUsername = username
	} else {
		state.UserIDToUpdate = user.ID
	}
	b.setState(ctx, chatID, state)
	b.reply(chatID, textEnterEmail, removeKeyboard())
}
