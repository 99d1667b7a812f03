package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/magabrotheeeer/course-access-bot/internal/lib/sl"
	"github.com/magabrotheeeer/course-access-bot/internal/models"
	"github.com/magabrotheeeer/course-access-bot/internal/services/promo"
	"github.com/magabrotheeeer/course-access-bot/internal/services/registration"
	"github.com/magabrotheeeer/course-access-bot/internal/storage/repository"
)

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.From != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	from := msg.From

	if msg.IsCommand() && msg.Command() == "start" {
		b.handleStart(ctx, chatID, from, msg.CommandArguments())
		return
	}

	state, err := b.states.Get(ctx, chatID)
	if err != nil {
		b.log.Error("failed to load dialog state", slog.Int64("chat_id", chatID), sl.Err(err))
		state = models.IdleState()
	}
	switch state.Step {
	case models.StepAwaitingEmail:
		b.handleEmailInput(ctx, chatID, state, msg.Text)
		return
	case models.StepAwaitingPromoCode:
		b.handlePromoInput(ctx, chatID, msg.Text)
		return
	}

	switch msg.Text {
	case buttonMyAccount:
		b.withRegistered(ctx, chatID, from.ID, from.UserName, b.handleMyAccount)
	case buttonReferralLink:
		b.withAccess(ctx, chatID, from.ID, from.UserName, b.handleReferralLink)
	case buttonReferralStatus:
		b.withAccess(ctx, chatID, from.ID, from.UserName, b.handleReferralStatus)
	case buttonMySubscription:
		b.withRegistered(ctx, chatID, from.ID, from.UserName, b.handleMySubscription)
	case buttonSupport:
		b.reply(chatID, supportText(b.cfg.AdminTGAccount))
	default:
		b.withAccess(ctx, chatID, from.ID, from.UserName, func(ctx context.Context, chatID int64, user *models.User) {
			b.log.Warn("unknown text from user",
				slog.Int64("telegram_id", user.TelegramID), slog.String("text", msg.Text))
			b.reply(chatID, textUnknown, withMarkup(mainKeyboard()))
		})
	}
}

// handleStart обрабатывает /start, включая deep-link параметры: "offer"
// и "privacy" показывают документы, числовой параметр запоминается как
// telegram id пригласившего.
func (b *Bot) handleStart(ctx context.Context, chatID int64, from *tgbotapi.User, param string) {
	b.log.Info("start command",
		slog.Int64("telegram_id", from.ID), slog.String("username", from.UserName))

	var referrerID int64
	switch param {
	case "":
	case "offer":
		b.reply(chatID, textOfferLink)
		return
	case "privacy":
		b.reply(chatID, textPrivacyLink)
		return
	default:
		referrerID, _ = strconv.ParseInt(param, 10, 64)
	}

	decision, err := b.access.ResolveRegistered(ctx, from.ID)
	if err != nil {
		b.log.Error("start handling failed", slog.Int64("telegram_id", from.ID), sl.Err(err))
		return
	}
	user := decision.User

	switch {
	case user == nil:
		state := models.DialogState{
			Step:               models.StepAwaitingEmail,
			NewTelegramID:      from.ID,
			NewUsername:        from.UserName,
			ReferrerTelegramID: referrerID,
		}
		b.setState(ctx, chatID, state)
		b.reply(chatID,
			fmt.Sprintf("Добро пожаловать, %s! Для начала работы, пожалуйста, укажите вашу почту.", from.FirstName),
			removeKeyboard())
	case !user.IsActive:
		b.reply(chatID, textDeactivated)
	case !user.HasEmail():
		b.setState(ctx, chatID, models.DialogState{
			Step:           models.StepAwaitingEmail,
			UserIDToUpdate: user.ID,
		})
		b.reply(chatID,
			fmt.Sprintf("Здравствуйте, %s! Похоже, ваш email не был указан. Пожалуйста, введите ваш email для продолжения.", from.FirstName),
			removeKeyboard())
	default:
		b.reply(chatID, fmt.Sprintf("С возвращением, %s!", from.FirstName), withMarkup(mainKeyboard()))
	}
}

// handleEmailInput обрабатывает ответ на запрос email. Невалидный или
// занятый адрес оставляет диалог открытым для повторной попытки.
func (b *Bot) handleEmailInput(ctx context.Context, chatID int64, state models.DialogState, text string) {
	result, err := b.registration.SubmitEmail(ctx, state, text)
	if err != nil {
		b.log.Error("email submission failed", slog.Int64("chat_id", chatID), sl.Err(err))
		b.clearState(ctx, chatID)
		b.reply(chatID, textEmailFlowError)
		return
	}

	switch result.Status {
	case registration.StatusInvalid:
		b.reply(chatID, textEmailInvalid)
	case registration.StatusTaken:
		b.reply(chatID, textEmailTaken)
	case registration.StatusUpdated:
		b.clearState(ctx, chatID)
		b.reply(chatID, textEmailUpdated, withMarkup(mainKeyboard()))
	case registration.StatusCreated:
		b.clearState(ctx, chatID)
		b.recordReferral(ctx, state.ReferrerTelegramID, result.UserID)
		b.log.Info("user registered",
			slog.Int64("telegram_id", state.NewTelegramID), slog.String("email", result.Email))
		b.reply(chatID, textEmailCreated, withMarkup(mainKeyboard()))
	}
}

// recordReferral записывает реферальную связь, если deep-link параметр
// указывал на существующего пользователя. Связь чисто информационная,
// поэтому любые проблемы здесь только логируются.
func (b *Bot) recordReferral(ctx context.Context, referrerTelegramID, newUserID int64) {
	if referrerTelegramID == 0 {
		return
	}
	referrer, err := b.repo.GetUserByTelegramID(ctx, referrerTelegramID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			b.log.Error("referrer lookup failed",
				slog.Int64("referrer_telegram_id", referrerTelegramID), sl.Err(err))
		}
		return
	}
	if referrer.ID == newUserID {
		return
	}
	if _, err := b.repo.CreateReferral(ctx, referrer.ID, newUserID); err != nil {
		b.log.Error("failed to record referral",
			slog.Int64("referrer_id", referrer.ID), sl.Err(err))
		return
	}
	b.log.Info("referral recorded",
		slog.Int64("referrer_id", referrer.ID), slog.Int64("referred_user_id", newUserID))
}

// handlePromoInput обрабатывает промокод, присланный после enter_promo.
func (b *Bot) handlePromoInput(ctx context.Context, chatID int64, text string) {
	quote, err := b.promo.Redeem(ctx, text)
	switch {
	case errors.Is(err, promo.ErrNotFound):
		b.clearState(ctx, chatID)
		b.reply(chatID, textPromoInvalid, withMarkup(retryPromoKeyboard()))
		return
	case errors.Is(err, promo.ErrExhausted):
		b.clearState(ctx, chatID)
		b.reply(chatID, textPromoExhausted, withMarkup(retryPromoKeyboard()))
		return
	case err != nil:
		b.log.Error("promo redemption failed", slog.Int64("chat_id", chatID), sl.Err(err))
		b.clearState(ctx, chatID)
		return
	}

	b.clearState(ctx, chatID)
	b.reply(chatID,
		fmt.Sprintf("✅ Промокод применен!\n\nСтоимость: %d₽\n<s>%d₽</s>", quote.FinalPrice, promo.BasePrice),
		withMarkup(promoAppliedKeyboard(quote.Promo.ID, quote.FinalPrice)),
		withHTML())
}

func (b *Bot) handleMyAccount(ctx context.Context, chatID int64, user *models.User) {
	b.log.Info("account info requested", slog.Int64("telegram_id", user.TelegramID))

	accessStatus := textNoAccessShort
	decision, err := b.access.Resolve(ctx, user.TelegramID)
	if err != nil {
		b.log.Error("access status lookup failed", slog.Int64("telegram_id", user.TelegramID), sl.Err(err))
	} else if decision.Granted() {
		if decision.Reason == models.ReasonWhitelist {
			accessStatus = "✅ Доступ к курсу есть (белый список)"
		} else {
			accessStatus = fmt.Sprintf("✅ Доступ к курсу есть (до %s UTC)",
				decision.ExpiresAt.UTC().Format("02.01.2006 15:04"))
		}
	}

	info := fmt.Sprintf("👤 Ваш аккаунт:\n\n🆔 Telegram ID: `%d`\n📧 Email: `%s`\n\n%s",
		user.TelegramID, user.Email, accessStatus)
	b.reply(chatID, info, withMarkdown())
}

const textNoAccessShort = "❌ Доступ к курсу отсутствует"

func (b *Bot) handleReferralLink(_ context.Context, chatID int64, user *models.User) {
	b.log.Info("referral link requested", slog.Int64("telegram_id", user.TelegramID))

	startParam := strconv.FormatInt(user.TelegramID, 10)
	if user.ReferralLinkOverride != nil && *user.ReferralLinkOverride != "" {
		startParam = *user.ReferralLinkOverride
	}
	link := fmt.Sprintf("https://t.me/%s?start=%s", b.cfg.BotUsername, startParam)
	b.reply(chatID, fmt.Sprintf("🔗 Ваша реферальная ссылка:\n`%s`", link), withMarkdown())
}

func (b *Bot) handleReferralStatus(_ context.Context, chatID int64, user *models.User) {
	b.log.Info("referral status requested", slog.Int64("telegram_id", user.TelegramID))

	active := b.cfg.DefaultReferralStatus
	if user.ReferralStatusOverride != nil {
		active = *user.ReferralStatusOverride
	}

	icon, label := "❌", "Не активна"
	if active {
		icon, label = "✅", "Активна"
	}
	b.reply(chatID, fmt.Sprintf("📊 Статус вашей реферальной ссылки: %s (%s)", icon, label))
}

// handleMySubscription показывает одно из трех состояний: активная
// подписка, постоянный доступ по белому списку или предложение об оплате.
func (b *Bot) handleMySubscription(ctx context.Context, chatID int64, user *models.User) {
	b.log.Info("subscription status requested", slog.Int64("telegram_id", user.TelegramID))

	text, markup, markdown := b.subscriptionView(ctx, user)
	opts := []func(*tgbotapi.MessageConfig){}
	if markup != nil {
		opts = append(opts, withMarkup(*markup))
	}
	if markdown {
		opts = append(opts, withMarkdown())
	}
	b.reply(chatID, text, opts...)
}

// subscriptionView строит содержимое карточки подписки. Используется
// и кнопкой главной клавиатуры, и callback-ом show_subscription.
func (b *Bot) subscriptionView(ctx context.Context, user *models.User) (string, *tgbotapi.InlineKeyboardMarkup, bool) {
	sub, err := b.repo.FindCurrentSubscription(ctx, user.ID, time.Now().UTC())
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		b.log.Error("subscription lookup failed", slog.Int64("user_id", user.ID), sl.Err(err))
		return textEmailFlowError, nil, false
	}
	if sub != nil {
		renewal := "❌ Автоплатеж отключен"
		if sub.AutoRenewal {
			renewal = "🔄 Автоплатеж включен"
		}
		text := fmt.Sprintf("✅ Ваш доступ к обучающему курсу активен до: %s\n\n%s\n\nДля продления подписки нажмите на кнопку ниже:",
			sub.EndDate.UTC().Format("02.01.2006 15:04 UTC"), renewal)
		markup := activeSubscriptionKeyboard()
		return text, &markup, false
	}

	whitelisted, err := b.access.Resolve(ctx, user.TelegramID)
	if err == nil && whitelisted.Granted() && whitelisted.Reason == models.ReasonWhitelist {
		return textWhitelistAccess, nil, false
	}

	markup := paymentOfferKeyboard()
	return textPaymentOffer, &markup, true
}
