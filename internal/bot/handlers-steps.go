package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"dentalsite/internal/calculator"
)

func (b *Bot) handleStepCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID

	cs, err := b.loadChat(ctx, chatID, userLanguage(callback.From))
	if err != nil {
		b.logger.Error("Failed to load chat session",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, printer(b.cfg.DefaultLocale).Sprintf(msgStateError))
		return
	}

	kind, value, _ := strings.Cut(callback.Data, ":")
	session := cs.session
	before := session.State()

	switch kind {
	case CallbackService:
		s := session.Dispatch(calculator.SelectService(value))
		if s.SelectedServiceID == value {
			session.Dispatch(calculator.Advance())
		}
	case CallbackQuantity:
		delta, err := strconv.Atoi(value)
		if err != nil || delta == 0 {
			return
		}
		session.Dispatch(calculator.SetQuantity(session.State().Quantity + delta))
	case CallbackMaterial:
		tier, ok := calculator.ParseMaterialTier(value)
		if !ok {
			return
		}
		session.Dispatch(calculator.SetMaterialTier(tier))
	case CallbackNav:
		switch value {
		case NavNext:
			session.Dispatch(calculator.Advance())
		case NavBack:
			session.Dispatch(calculator.Retreat())
		case NavReset:
			session.Dispatch(calculator.Reset())
		default:
			return
		}
	case CallbackRequest:
		b.handleRequest(ctx, chatID, cs)
		return
	default:
		b.logger.Warn("Unknown callback",
			zap.Int64("chat_id", chatID),
			zap.String("data", callback.Data))
		return
	}

	cs.awaiting = AwaitNone
	b.saveChatState(ctx, chatID, cs)
	if session.State() == before {
		return
	}
	b.editView(chatID, callback.Message.MessageID, cs)
}

// renderView builds the text and keyboard for the current wizard step.
// The keyboard is nil when there is nothing to choose from.
func (b *Bot) renderView(cs *chatSession) (string, *tgbotapi.InlineKeyboardMarkup) {
	p := printer(cs.locale)
	ctrl := cs.session.Controller()
	s := cs.session.State()

	if len(ctrl.Services()) == 0 {
		return p.Sprintf(msgNoServices), nil
	}

	switch s.Step {
	case calculator.StepOptionSelection:
		svc, _ := ctrl.Service(s.SelectedServiceID)
		text := p.Sprintf(msgOptions, svc.Title, s.Quantity)
		if ctrl.RequiresMaterial(s.SelectedServiceID) {
			text += "\n\n" + p.Sprintf(msgChooseMaterial)
		}
		kb := b.createOptionsKeyboard(p, s, ctrl)
		return text, &kb

	case calculator.StepResults:
		svc, _ := ctrl.Service(s.SelectedServiceID)
		title := svc.Title
		switch s.MaterialTier {
		case calculator.MaterialStandard:
			title = fmt.Sprintf("%s, %s", title, p.Sprintf(btnStandard))
		case calculator.MaterialPremium:
			title = fmt.Sprintf("%s, %s", title, p.Sprintf(btnPremium))
		}
		estimate, _ := cs.session.Estimate()
		price := calculator.FormatRange(estimate, cs.locale, b.cfg.Currency)
		kb := b.createResultsKeyboard(p, s, ctrl)
		return p.Sprintf(msgResults, title, s.Quantity, price), &kb

	default:
		kb := b.createServiceKeyboard(ctrl.Services(), s.SelectedServiceID)
		return p.Sprintf(msgChooseService), &kb
	}
}

func (b *Bot) sendView(chatID int64, cs *chatSession) {
	text, kb := b.renderView(cs)
	msg := tgbotapi.NewMessage(chatID, text)
	if kb != nil {
		msg.ReplyMarkup = *kb
	}
	b.sendMessage(msg)
}

func (b *Bot) editView(chatID int64, messageID int, cs *chatSession) {
	text, kb := b.renderView(cs)

	var edit tgbotapi.EditMessageTextConfig
	if kb != nil {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *kb)
	} else {
		edit = tgbotapi.NewEditMessageText(chatID, messageID, text)
	}

	if _, err := b.api.Send(edit); err != nil {
		b.logger.Warn("Failed to edit message, sending a new one",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendView(chatID, cs)
	}
}
