package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/message"

	"dentalsite/internal/calculator"
	"dentalsite/internal/catalog"
)

// BOT KEYBOARDS

func callbackData(kind, value string) string {
	return fmt.Sprintf("%s:%s", kind, value)
}

func navRow(p *message.Printer, s calculator.State, ctrl *calculator.Controller) []tgbotapi.InlineKeyboardButton {
	var row []tgbotapi.InlineKeyboardButton
	if ctrl.CanRetreat(s) {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(p.Sprintf(btnBack), callbackData(CallbackNav, NavBack)))
	}
	if ctrl.CanAdvance(s) {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(p.Sprintf(btnNext), callbackData(CallbackNav, NavNext)))
	}
	return row
}

func resetRow(p *message.Printer) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(p.Sprintf(btnReset), callbackData(CallbackNav, NavReset)),
	)
}

func (b *Bot) createServiceKeyboard(services []catalog.Service, selected string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(services))
	for _, svc := range services {
		title := svc.Title
		if svc.ID == selected {
			title = "✅ " + title
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(title, callbackData(CallbackService, svc.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) createOptionsKeyboard(p *message.Printer, s calculator.State, ctrl *calculator.Controller) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("−5", callbackData(CallbackQuantity, "-5")),
			tgbotapi.NewInlineKeyboardButtonData("−1", callbackData(CallbackQuantity, "-1")),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d", s.Quantity), callbackData(CallbackQuantity, "0")),
			tgbotapi.NewInlineKeyboardButtonData("+1", callbackData(CallbackQuantity, "+1")),
			tgbotapi.NewInlineKeyboardButtonData("+5", callbackData(CallbackQuantity, "+5")),
		),
	}

	if ctrl.RequiresMaterial(s.SelectedServiceID) {
		standard := p.Sprintf(btnStandard)
		premium := p.Sprintf(btnPremium)
		switch s.MaterialTier {
		case calculator.MaterialStandard:
			standard = "✅ " + standard
		case calculator.MaterialPremium:
			premium = "✅ " + premium
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(standard, callbackData(CallbackMaterial, string(calculator.MaterialStandard))),
			tgbotapi.NewInlineKeyboardButtonData(premium, callbackData(CallbackMaterial, string(calculator.MaterialPremium))),
		))
	}

	if nav := navRow(p, s, ctrl); len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, resetRow(p))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) createResultsKeyboard(p *message.Printer, s calculator.State, ctrl *calculator.Controller) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(p.Sprintf(btnRequest), callbackData(CallbackRequest, "contact")),
		),
	}
	if nav := navRow(p, s, ctrl); len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, resetRow(p))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) createContactRequestKeyboard(p *message.Printer) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonContact(p.Sprintf(msgShareContact)),
		),
	)
	kb.OneTimeKeyboard = true
	kb.ResizeKeyboard = true
	return kb
}
