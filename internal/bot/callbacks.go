package bot

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/magabrotheeeer/course-access-bot/internal/lib/sl"
	"github.com/magabrotheeeer/course-access-bot/internal/models"
	"github.com/magabrotheeeer/course-access-bot/internal/storage/repository"
)

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil || cq.From == nil {
		b.ackCallback(cq.ID, "")
		return
	}
	chatID := cq.Message.Chat.ID
	messageID := cq.Message.MessageID

	switch {
	case cq.Data == callbackEnterPromo:
		b.ackCallback(cq.ID, "")
		b.setState(ctx, chatID, models.DialogState{Step: models.StepAwaitingPromoCode})
		b.reply(chatID, textEnterPromo)

	case cq.Data == callbackBuyAccess:
		b.ackCallback(cq.ID, "")
		b.edit(chatID, messageID, textPaymentOffer, markupPtr(buyAccessKeyboard()), true)

	case strings.HasPrefix(cq.Data, callbackBuyWithPromoPrefix):
		promoID, _ := strconv.ParseInt(strings.TrimPrefix(cq.Data, callbackBuyWithPromoPrefix), 10, 64)
		b.log.Info("promo purchase requested",
			slog.Int64("telegram_id", cq.From.ID), slog.Int64("promo_id", promoID))
		b.ackCallback(cq.ID, "Функция оплаты с промокодом будет реализована позже")

	case cq.Data == callbackProcessPayment:
		b.ackCallback(cq.ID, "")
		b.reply(chatID, textPaymentOffer, withMarkdown())

	case cq.Data == callbackShowOffer:
		b.ackCallback(cq.ID, "")
		b.edit(chatID, messageID, textOffer, markupPtr(backToOfferKeyboard()), true)

	case cq.Data == callbackShowPrivacy:
		b.ackCallback(cq.ID, "")
		b.edit(chatID, messageID, textPrivacy, markupPtr(backToOfferKeyboard()), true)

	case cq.Data == callbackShowRequisites:
		b.ackCallback(cq.ID, "")
		b.edit(chatID, messageID, requisitesText(b.company), markupPtr(backToOfferKeyboard()), true)

	case cq.Data == callbackDisableAutoRenewal:
		b.ackCallback(cq.ID, "")
		b.withRegistered(ctx, chatID, cq.From.ID, cq.From.UserName,
			func(ctx context.Context, chatID int64, user *models.User) {
				b.handleDisableAutoRenewal(ctx, chatID, messageID, user)
			})

	case cq.Data == callbackShowSubscription:
		b.ackCallback(cq.ID, "")
		b.withRegistered(ctx, chatID, cq.From.ID, cq.From.UserName,
			func(ctx context.Context, chatID int64, user *models.User) {
				text, markup, markdown := b.subscriptionView(ctx, user)
				b.edit(chatID, messageID, text, markup, markdown)
			})

	default:
		b.ackCallback(cq.ID, "")
	}
}

// handleDisableAutoRenewal выключает автопродление у текущей подписки.
// Отсутствие подписки не считается ошибкой: сообщение об отключении
// показывается в любом случае.
func (b *Bot) handleDisableAutoRenewal(ctx context.Context, chatID int64, messageID int, user *models.User) {
	b.log.Info("auto renewal disable requested", slog.Int64("telegram_id", user.TelegramID))

	sub, err := b.repo.FindCurrentSubscription(ctx, user.ID, time.Now().UTC())
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		b.log.Error("subscription lookup failed", slog.Int64("user_id", user.ID), sl.Err(err))
		return
	}
	if sub != nil {
		if err := b.repo.DisableAutoRenewal(ctx, sub.ID); err != nil {
			b.log.Error("failed to disable auto renewal",
				slog.Int64("subscription_id", sub.ID), sl.Err(err))
			return
		}
	}
	b.edit(chatID, messageID, textAutoRenewalDisabled, markupPtr(backToSubscriptionKeyboard()), false)
}

func markupPtr(markup tgbotapi.InlineKeyboardMarkup) *tgbotapi.InlineKeyboardMarkup {
	return &markup
}
