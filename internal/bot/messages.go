package bot

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	textcatalog "golang.org/x/text/message/catalog"
)

const (
	msgWelcome        = "welcome"
	msgChooseService  = "choose_service"
	msgNoServices     = "no_services"
	msgOptions        = "options"
	msgChooseMaterial = "choose_material"
	msgResults        = "results"
	msgAskName        = "ask_name"
	msgAskPhone       = "ask_phone"
	msgShareContact   = "share_contact"
	msgSending        = "sending"
	msgSent           = "sent"
	msgFailed         = "failed"
	msgRateLimited    = "rate_limited"
	msgInFlight       = "in_flight"
	msgInvalidName    = "invalid_name"
	msgInvalidPhone   = "invalid_phone"
	msgNotReady       = "not_ready"
	msgUnknownCommand = "unknown_command"
	msgUseButtons     = "use_buttons"
	msgHelp           = "help"
	msgStateError     = "state_error"

	btnNext     = "btn_next"
	btnBack     = "btn_back"
	btnReset    = "btn_reset"
	btnRequest  = "btn_request"
	btnStandard = "btn_standard"
	btnPremium  = "btn_premium"
)

var translations = map[language.Tag]map[string]string{
	language.English: {
		msgWelcome:        "Hello! 👋 I will help you estimate the cost of your treatment.",
		msgChooseService:  "Choose a service:",
		msgNoServices:     "No services are available right now. Please try again later.",
		msgOptions:        "%s\n\nHow many units do you need? Quantity: %d",
		msgChooseMaterial: "Choose a material:",
		msgResults:        "%s × %d\n\nEstimated price: %s\n\nThe final price is confirmed at the consultation.",
		msgAskName:        "Please enter your name:",
		msgAskPhone:       "Please enter your phone number or share your contact:",
		msgShareContact:   "📱 Share contact",
		msgSending:        "⏳ Sending your request...",
		msgSent:           "✅ Thank you! The clinic will contact you shortly.",
		msgFailed:         "We could not send your request. Please try again.",
		msgRateLimited:    "Too many requests. Please try again in %d seconds.",
		msgInFlight:       "Your request is already being sent.",
		msgInvalidName:    "The name must be at least 2 characters long.",
		msgInvalidPhone:   "Please enter a valid phone number.",
		msgNotReady:       "Please finish the calculator first.",
		msgUnknownCommand: "Unknown command. Use /start to begin.",
		msgUseButtons:     "Please use the buttons below.",
		msgHelp:           "/start - start the price calculator\n/reset - start over\n/help - show this help",
		msgStateError:     "Something went wrong. Please try /start again.",
		btnNext:           "Next ➡️",
		btnBack:           "⬅️ Back",
		btnReset:          "🔄 Start over",
		btnRequest:        "📝 Request a consultation",
		btnStandard:       "Standard",
		btnPremium:        "Premium ✨",
	},
	language.German: {
		msgWelcome:        "Hallo! 👋 Ich helfe Ihnen, die Kosten Ihrer Behandlung abzuschätzen.",
		msgChooseService:  "Wählen Sie eine Leistung:",
		msgNoServices:     "Derzeit sind keine Leistungen verfügbar. Bitte versuchen Sie es später erneut.",
		msgOptions:        "%s\n\nWie viele Einheiten benötigen Sie? Anzahl: %d",
		msgChooseMaterial: "Wählen Sie ein Material:",
		msgResults:        "%s × %d\n\nGeschätzter Preis: %s\n\nDer endgültige Preis wird in der Beratung bestätigt.",
		msgAskName:        "Bitte geben Sie Ihren Namen ein:",
		msgAskPhone:       "Bitte geben Sie Ihre Telefonnummer ein oder teilen Sie Ihren Kontakt:",
		msgShareContact:   "📱 Kontakt teilen",
		msgSending:        "⏳ Ihre Anfrage wird gesendet...",
		msgSent:           "✅ Vielen Dank! Die Praxis meldet sich in Kürze bei Ihnen.",
		msgFailed:         "Ihre Anfrage konnte nicht gesendet werden. Bitte versuchen Sie es erneut.",
		msgRateLimited:    "Zu viele Anfragen. Bitte versuchen Sie es in %d Sekunden erneut.",
		msgInFlight:       "Ihre Anfrage wird bereits gesendet.",
		msgInvalidName:    "Der Name muss mindestens 2 Zeichen lang sein.",
		msgInvalidPhone:   "Bitte geben Sie eine gültige Telefonnummer ein.",
		msgNotReady:       "Bitte schließen Sie zuerst den Rechner ab.",
		msgUnknownCommand: "Unbekannter Befehl. Starten Sie mit /start.",
		msgUseButtons:     "Bitte verwenden Sie die Schaltflächen unten.",
		msgHelp:           "/start - Preisrechner starten\n/reset - neu beginnen\n/help - diese Hilfe anzeigen",
		msgStateError:     "Etwas ist schiefgelaufen. Bitte versuchen Sie es erneut mit /start.",
		btnNext:           "Weiter ➡️",
		btnBack:           "⬅️ Zurück",
		btnReset:          "🔄 Neu beginnen",
		btnRequest:        "📝 Beratung anfragen",
		btnStandard:       "Standard",
		btnPremium:        "Premium ✨",
	},
	language.Russian: {
		msgWelcome:        "Привет! 👋 Я помогу оценить стоимость лечения.",
		msgChooseService:  "Выберите услугу:",
		msgNoServices:     "Сейчас нет доступных услуг. Пожалуйста, попробуйте позже.",
		msgOptions:        "%s\n\nСколько единиц вам нужно? Количество: %d",
		msgChooseMaterial: "Выберите материал:",
		msgResults:        "%s × %d\n\nОриентировочная стоимость: %s\n\nТочная цена подтверждается на консультации.",
		msgAskName:        "Пожалуйста, введите ваше имя:",
		msgAskPhone:       "Введите номер телефона или отправьте контакт:",
		msgShareContact:   "📱 Отправить контакт",
		msgSending:        "⏳ Отправляем заявку...",
		msgSent:           "✅ Спасибо! Клиника скоро свяжется с вами.",
		msgFailed:         "Не удалось отправить заявку. Пожалуйста, попробуйте ещё раз.",
		msgRateLimited:    "Слишком много запросов. Попробуйте через %d сек.",
		msgInFlight:       "Ваша заявка уже отправляется.",
		msgInvalidName:    "Имя должно содержать минимум 2 символа.",
		msgInvalidPhone:   "Пожалуйста, введите корректный номер телефона.",
		msgNotReady:       "Сначала завершите расчёт.",
		msgUnknownCommand: "Неизвестная команда. Пожалуйста, используйте /start для начала работы.",
		msgUseButtons:     "Пожалуйста, используйте кнопки ниже.",
		msgHelp:           "/start - запустить калькулятор\n/reset - начать заново\n/help - показать эту справку",
		msgStateError:     "Что-то пошло не так. Пожалуйста, начните заново с /start.",
		btnNext:           "Далее ➡️",
		btnBack:           "⬅️ Назад",
		btnReset:          "🔄 Начать заново",
		btnRequest:        "📝 Записаться на консультацию",
		btnStandard:       "Стандарт",
		btnPremium:        "Премиум ✨",
	},
}

var messages = buildMessages()

func buildMessages() *textcatalog.Builder {
	b := textcatalog.NewBuilder(textcatalog.Fallback(language.English))
	for tag, entries := range translations {
		for key, text := range entries {
			if err := b.SetString(tag, key, text); err != nil {
				panic(err)
			}
		}
	}
	return b
}

func printer(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag, message.Catalog(messages))
}
