package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"dentalsite/internal/calculator"
	"dentalsite/internal/catalog"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	locale := catalog.MatchLocale(userLanguage(msg.From), b.cfg.DefaultLocale)

	switch msg.Command() {
	case "start":
		b.HandleStart(ctx, chatID, locale)
	case "reset":
		b.HandleReset(ctx, chatID, userLanguage(msg.From))
	case "help":
		b.sendMessage(tgbotapi.NewMessage(chatID, printer(locale).Sprintf(msgHelp)))
	case "export", "stats":
		if msg.From == nil || !b.isAdmin(msg.From.ID) {
			b.sendError(chatID, printer(locale).Sprintf(msgUnknownCommand))
			return
		}
		b.handleAdminCommand(ctx, chatID, msg.Command())
	default:
		b.sendError(chatID, printer(locale).Sprintf(msgUnknownCommand))
	}
}

// HandleStart opens a fresh wizard with the catalog reloaded for the
// chat's locale.
func (b *Bot) HandleStart(ctx context.Context, chatID int64, locale string) {
	var draft calculator.Contact
	if old, ok := b.chats[chatID]; ok {
		draft = old.draft
	}

	if err := b.state.ClearState(ctx, chatID); err != nil {
		b.logger.Warn("Failed to clear chat state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}

	cs := b.newChatSession(ctx, chatID, locale)
	cs.draft = draft
	b.saveChatState(ctx, chatID, cs)

	b.logger.Info("Wizard started",
		zap.Int64("chat_id", chatID),
		zap.String("locale", locale),
		zap.Int("services", len(cs.session.Controller().Services())))

	welcome := tgbotapi.NewMessage(chatID, printer(locale).Sprintf(msgWelcome))
	welcome.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	b.sendMessage(welcome)
	b.sendView(chatID, cs)
}

func (b *Bot) HandleReset(ctx context.Context, chatID int64, languageCode string) {
	cs, err := b.loadChat(ctx, chatID, languageCode)
	if err != nil {
		b.logger.Error("Failed to load chat session",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, printer(b.cfg.DefaultLocale).Sprintf(msgStateError))
		return
	}

	cs.session.Dispatch(calculator.Reset())
	cs.awaiting = AwaitNone
	b.saveChatState(ctx, chatID, cs)
	b.sendView(chatID, cs)
}
