// Package bot реализует telegram-интерфейс доступа к закрытому курсу:
// регистрацию по email, проверку доступа, промокоды и карточку оплаты.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/magabrotheeeer/course-access-bot/internal/botstate"
	"github.com/magabrotheeeer/course-access-bot/internal/config"
	"github.com/magabrotheeeer/course-access-bot/internal/lib/sl"
	"github.com/magabrotheeeer/course-access-bot/internal/models"
	"github.com/magabrotheeeer/course-access-bot/internal/services/access"
	"github.com/magabrotheeeer/course-access-bot/internal/services/promo"
	"github.com/magabrotheeeer/course-access-bot/internal/services/registration"
)

// handleTimeout ограничивает обработку одного апдейта.
const handleTimeout = 15 * time.Second

// api описывает используемую часть telegram-клиента.
type api interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Repository определяет методы хранилища, нужные обработчикам напрямую.
type Repository interface {
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	FindCurrentSubscription(ctx context.Context, userID int64, now time.Time) (*models.Subscription, error)
	DisableAutoRenewal(ctx context.Context, subscriptionID int64) error
	CreateReferral(ctx context.Context, userID, referredUserID int64) (int64, error)
}

// Bot обрабатывает апдейты telegram и отвечает пользователям.
type Bot struct {
	api     api
	log     *slog.Logger
	cfg     config.Bot
	company config.Company

	states       botstate.Store
	repo         Repository
	access       *access.Service
	registration *registration.Service
	promo        *promo.Service
}

// New создает Bot поверх уже инициализированного telegram-клиента.
func New(
	client api,
	log *slog.Logger,
	cfg config.Bot,
	company config.Company,
	states botstate.Store,
	repo Repository,
	accessService *access.Service,
	registrationService *registration.Service,
	promoService *promo.Service,
) *Bot {
	return &Bot{
		api:          client,
		log:          log,
		cfg:          cfg,
		company:      company,
		states:       states,
		repo:         repo,
		access:       accessService,
		registration: registrationService,
		promo:        promoService,
	}
}

// Connect создает telegram-клиент по токену из конфигурации.
func Connect(cfg config.Bot) (*tgbotapi.BotAPI, error) {
	const op = "bot.Connect"

	client, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return client, nil
}

// Run запускает long polling и блокируется до отмены контекста.
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.cfg.UpdateTimeout

	updates := b.api.GetUpdatesChan(updateConfig)
	b.log.Info("bot polling started")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		handleCtx, cancel := context.WithTimeout(context.Background(), handleTimeout)
		b.handleUpdate(handleCtx, update)
		cancel()
	}
	b.log.Info("bot polling stopped")
}

// SendText отправляет простое текстовое сообщение. Используется рассылкой.
func (b *Bot) SendText(chatID int64, text string) error {
	const op = "bot.SendText"

	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// reply отправляет текст в чат, опционально с клавиатурой и parse mode.
func (b *Bot) reply(chatID int64, text string, opts ...func(*tgbotapi.MessageConfig)) {
	msg := tgbotapi.NewMessage(chatID, text)
	for _, opt := range opts {
		opt(&msg)
	}
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("failed to send message", slog.Int64("chat_id", chatID), sl.Err(err))
	}
}

func withMarkup(markup interface{}) func(*tgbotapi.MessageConfig) {
	return func(msg *tgbotapi.MessageConfig) {
		msg.ReplyMarkup = markup
	}
}

func withMarkdown() func(*tgbotapi.MessageConfig) {
	return func(msg *tgbotapi.MessageConfig) {
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.DisableWebPagePreview = true
	}
}

func withHTML() func(*tgbotapi.MessageConfig) {
	return func(msg *tgbotapi.MessageConfig) {
		msg.ParseMode = tgbotapi.ModeHTML
	}
}

func removeKeyboard() func(*tgbotapi.MessageConfig) {
	return withMarkup(tgbotapi.NewRemoveKeyboard(false))
}

// edit заменяет текст сообщения, из которого пришел callback.
func (b *Bot) edit(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup, markdown bool) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ReplyMarkup = markup
	if markdown {
		edit.ParseMode = tgbotapi.ModeMarkdown
		edit.DisableWebPagePreview = true
	}
	if _, err := b.api.Send(edit); err != nil {
		b.log.Error("failed to edit message", slog.Int64("chat_id", chatID), sl.Err(err))
	}
}

// ackCallback подтверждает callback, чтобы у кнопки пропали "часики".
func (b *Bot) ackCallback(callbackID, text string) {
	cfg := tgbotapi.CallbackConfig{CallbackQueryID: callbackID, Text: text}
	if _, err := b.api.Request(cfg); err != nil {
		b.log.Error("failed to ack callback", sl.Err(err))
	}
}

func (b *Bot) setState(ctx context.Context, chatID int64, state models.DialogState) {
	if err := b.states.Set(ctx, chatID, state); err != nil {
		b.log.Error("failed to save dialog state", slog.Int64("chat_id", chatID), sl.Err(err))
	}
}

func (b *Bot) clearState(ctx context.Context, chatID int64) {
	if err := b.states.Clear(ctx, chatID); err != nil {
		b.log.Error("failed to clear dialog state", slog.Int64("chat_id", chatID), sl.Err(err))
	}
}
