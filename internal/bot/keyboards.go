package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Подписи кнопок главной клавиатуры. Входящие сообщения сопоставляются
// с ними дословно, поэтому текст кнопок менять нельзя без миграции.
const (
	buttonMyAccount      = "👤 Мой аккаунт"
	buttonReferralLink   = "🔗 Ваша реферальная ссылка"
	buttonReferralStatus = "📊 Статус реф. ссылки"
	buttonMySubscription = "⏳ Моя подписка"
	buttonSupport        = "🆘 Поддержка"
)

// Идентификаторы callback-кнопок.
const (
	callbackEnterPromo         = "enter_promo"
	callbackBuyAccess          = "buy_access"
	callbackBuyWithPromoPrefix = "buy_access_with_promo_"
	callbackProcessPayment     = "process_payment"
	callbackDisableAutoRenewal = "disable_auto_renewal"
	callbackShowSubscription   = "show_subscription"
	callbackShowOffer          = "show_offer"
	callbackShowPrivacy        = "show_privacy"
	callbackShowRequisites     = "show_requisites"
)

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonMyAccount),
			tgbotapi.NewKeyboardButton(buttonReferralLink),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonReferralStatus),
			tgbotapi.NewKeyboardButton(buttonMySubscription),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonSupport),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func activeSubscriptionKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Продлить подписку", callbackBuyAccess),
			tgbotapi.NewInlineKeyboardButtonData("Ввести промокод", callbackEnterPromo),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Отключить автоплатеж", callbackDisableAutoRenewal),
		),
	)
}

func paymentOfferKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Оплатить 1500₽", callbackProcessPayment),
			tgbotapi.NewInlineKeyboardButtonData("Ввести промокод", callbackEnterPromo),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Отключить автоплатеж", callbackDisableAutoRenewal),
		),
	)
}

func buyAccessKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Оплатить 1500₽", callbackProcessPayment),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Ввести промокод", callbackEnterPromo),
		),
	)
}

func retryPromoKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Купить доступ", callbackBuyAccess),
		),
	)
}

func promoAppliedKeyboard(promoID int64, finalPrice int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("Купить доступ за %d₽", finalPrice),
				fmt.Sprintf("%s%d", callbackBuyWithPromoPrefix, promoID),
			),
		),
	)
}

func backToSubscriptionKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Назад к подписке", callbackShowSubscription),
		),
	)
}

func backToOfferKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Назад", callbackBuyAccess),
		),
	)
}
