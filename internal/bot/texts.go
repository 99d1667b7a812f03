package bot

import (
	"fmt"

	"github.com/magabrotheeeer/course-access-bot/internal/config"
)

// Ссылки на документы. Показываются и по deep-link параметрам /start,
// и в предложении об оплате.
const (
	offerURL   = "https://docs.google.com/document/d/1tgPqQTkjQDgftj-a0vNOgs53mi7-sctjv4WJ2BF9DTA/edit"
	privacyURL = "https://docs.google.com/document/d/10s0vc9sBXMeC8a-_VGSXzCPi0Z5k4AMy/edit"
)

const (
	textRegisterPrompt = "Пожалуйста, пройдите регистрацию (или убедитесь, что ваш аккаунт активен), используя /start."
	textEnterEmail     = "Пожалуйста, введите ваш email:"
	textNoAccess       = "❌ У вас нет активного доступа к курсу."

	textEmailInvalid   = "Не похоже на email. Пожалуйста, введите корректный адрес электронной почты."
	textEmailTaken     = "Этот email уже используется другим пользователем. Пожалуйста, введите другой email."
	textEmailCreated   = "Спасибо! Вы успешно зарегистрированы."
	textEmailUpdated   = "Спасибо! Ваш email обновлен."
	textEmailFlowError = "Произошла ошибка регистрации. Попробуйте /start снова."

	textDeactivated = "Ваш аккаунт был деактивирован."

	textEnterPromo     = "Пожалуйста, введите промокод:"
	textPromoInvalid   = "❌ Неверный или неактивный промокод. Попробуйте еще раз или нажмите 'Купить доступ'."
	textPromoExhausted = "❌ Промокод уже использован максимальное количество раз."

	textWhitelistAccess = "✅ У вас постоянный доступ к курсу (белый список)."

	textAutoRenewalDisabled = "Автоплатежи отключены! ✅\n" +
		"В следующем месяце не будет списания."

	textUnknown = "Пожалуйста, используйте кнопки на клавиатуре для взаимодействия с ботом."

	textOfferLink   = "Публичная оферта доступна по ссылке:\n" + offerURL
	textPrivacyLink = "Политика конфиденциальности доступна по ссылке:\n" + privacyURL
)

// textPaymentOffer — карточка предложения об оплате. Показывается из
// нескольких мест: моя подписка без активного доступа, кнопка продления
// и подтверждение оплаты.
const textPaymentOffer = "📚 Продукт: Приватный чат \"СИСТЕМНИК УБТ ПРИВАТ\"\n\n" +
	"🗓 Тарифный план: СИСТЕМНИК УБТ (Карта РФ)\n\n" +
	"— Тип платежа: Автоплатеж с интервалом 30d 0h 0m\n" +
	"— Сумма к оплате: 1500 RUB\n\n" +
	"После оплаты будет предоставлен доступ:\n\n" +
	"— Группа «СИСТЕМНИК УБТ ПРИВАТ»\n\n" +
	"Оплачивая подписку вы принимаете условия " +
	"[Публичной оферты](" + offerURL + ") и " +
	"[Политики конфиденциальности](" + privacyURL + ")"

const textOffer = "📜 *ПУБЛИЧНАЯ ОФЕРТА*\n\n" +
	"1. ОБЩИЕ ПОЛОЖЕНИЯ\n\n" +
	"1.1. Настоящая оферта является предложением заключить договор на оказание информационных услуг.\n" +
	"1.2. Акцептом оферты является оплата услуг.\n\n" +
	"2. УСЛОВИЯ ПОДПИСКИ\n\n" +
	"2.1. Подписка предоставляется на 30 дней.\n" +
	"2.2. Автопродление происходит автоматически.\n" +
	"2.3. Отмена подписки возможна в любой момент.\n\n" +
	"[Полный текст оферты](" + offerURL + ")"

const textPrivacy = "🔒 *ПОЛИТИКА КОНФИДЕНЦИАЛЬНОСТИ*\n\n" +
	"1. ОБРАБОТКА ДАННЫХ\n\n" +
	"1.1. Мы обрабатываем только те данные, которые необходимы для оказания услуг.\n" +
	"1.2. Ваши персональные данные не передаются третьим лицам.\n\n" +
	"2. ХРАНЕНИЕ ИНФОРМАЦИИ\n\n" +
	"2.1. Данные хранятся на защищенных серверах.\n" +
	"2.2. Срок хранения определяется законодательством.\n\n" +
	"[Полный текст политики](" + privacyURL + ")"

func requisitesText(company config.Company) string {
	return fmt.Sprintf("📋 *РЕКВИЗИТЫ КОМПАНИИ*\n\n"+
		"Название компании: %s\n"+
		"Регистрационный номер: %s\n"+
		"Адрес: %s\n\n"+
		"Банковские реквизиты:\n"+
		"Банк: %s\n"+
		"Счет: %s\n"+
		"SWIFT: %s\n"+
		"IBAN: %s",
		company.CompanyName, company.RegistrationNumber, company.Address,
		company.Bank, company.Account, company.SWIFT, company.IBAN)
}

func supportText(adminAccount string) string {
	return "Если не получается оплатить, читаем:\n\n" +
		"⚠️ Бот иногда не справляется с большими наплывами участников. " +
		"Пробуйте раз в несколько минут, или через час, в любом случае рано или поздно всё прогрузится!\n\n" +
		"📨 Только по долгим проблемам с оплатой — @" + adminAccount
}
