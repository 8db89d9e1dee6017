package bot

import (
	"context"
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"dentalsite/internal/calculator"
	"dentalsite/internal/forms"
)

// handleRequest starts the contact flow from the results step. A contact
// kept from a failed attempt is reused without asking again.
func (b *Bot) handleRequest(ctx context.Context, chatID int64, cs *chatSession) {
	p := printer(cs.locale)

	if cs.session.State().Step != calculator.StepResults {
		b.sendError(chatID, p.Sprintf(msgNotReady))
		return
	}

	if cs.draft.Name != "" && cs.draft.Phone != "" {
		b.submitEstimate(ctx, chatID, cs)
		return
	}

	cs.awaiting = AwaitName
	b.saveChatState(ctx, chatID, cs)
	b.sendMessage(tgbotapi.NewMessage(chatID, p.Sprintf(msgAskName)))
}

func (b *Bot) handleName(ctx context.Context, chatID int64, cs *chatSession, text string) {
	p := printer(cs.locale)

	name := strings.TrimSpace(text)
	if utf8.RuneCountInString(name) < forms.MinNameLength {
		b.sendError(chatID, p.Sprintf(msgInvalidName))
		return
	}

	cs.draft.Name = name
	cs.awaiting = AwaitPhone
	b.saveChatState(ctx, chatID, cs)

	msg := tgbotapi.NewMessage(chatID, p.Sprintf(msgAskPhone))
	msg.ReplyMarkup = b.createContactRequestKeyboard(p)
	b.sendMessage(msg)
}

func (b *Bot) handlePhone(ctx context.Context, chatID int64, cs *chatSession, phone string) {
	if forms.CountDigits(phone) < forms.MinPhoneDigits {
		b.sendError(chatID, printer(cs.locale).Sprintf(msgInvalidPhone))
		return
	}

	cs.draft.Phone = forms.NormalizePhoneNumber(phone)
	b.submitEstimate(ctx, chatID, cs)
}

// submitEstimate hands the estimate to the sink in the background. The
// chat stays usable while the request is pending.
func (b *Bot) submitEstimate(ctx context.Context, chatID int64, cs *chatSession) {
	p := printer(cs.locale)

	err := cs.session.SubmitAsync(ctx, cs.draft, func(err error) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.onSubmitted(chatID, cs, err)
	})
	if err != nil {
		b.handleSubmitError(ctx, chatID, cs, err)
		return
	}

	cs.awaiting = AwaitNone
	b.saveChatState(ctx, chatID, cs)

	msg := tgbotapi.NewMessage(chatID, p.Sprintf(msgSending))
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	b.sendMessage(msg)
}

func (b *Bot) handleSubmitError(ctx context.Context, chatID int64, cs *chatSession, err error) {
	p := printer(cs.locale)

	var verr *forms.ValidationError
	switch {
	case errors.As(err, &verr):
		if _, bad := verr.Fields["name"]; bad {
			cs.awaiting = AwaitName
			b.saveChatState(ctx, chatID, cs)
			b.sendError(chatID, p.Sprintf(msgInvalidName))
			return
		}
		cs.awaiting = AwaitPhone
		b.saveChatState(ctx, chatID, cs)
		b.sendError(chatID, p.Sprintf(msgInvalidPhone))
	case errors.Is(err, calculator.ErrSubmissionInFlight):
		b.sendMessage(tgbotapi.NewMessage(chatID, p.Sprintf(msgInFlight)))
	case errors.Is(err, calculator.ErrNotReady):
		b.sendError(chatID, p.Sprintf(msgNotReady))
	default:
		b.logger.Error("Failed to start estimate submission",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, p.Sprintf(msgStateError))
	}
}

// onSubmitted reports the sink result. It is not called for submissions
// abandoned by a reset or a closed session.
func (b *Bot) onSubmitted(chatID int64, cs *chatSession, err error) {
	p := printer(cs.locale)

	if err == nil {
		b.logger.Info("Estimate submitted", zap.Int64("chat_id", chatID))
		b.sendMessage(tgbotapi.NewMessage(chatID, p.Sprintf(msgSent)))
		return
	}

	b.logger.Warn("Estimate submission failed",
		zap.Int64("chat_id", chatID),
		zap.Error(err))

	text := p.Sprintf(msgFailed)
	var rerr *forms.RateLimitError
	if errors.As(err, &rerr) {
		text = p.Sprintf(msgRateLimited, int(math.Ceil(rerr.RetryAfter.Seconds())))
	}

	msg := tgbotapi.NewMessage(chatID, "❌ "+text)
	if cs.session.State().Step == calculator.StepResults {
		msg.ReplyMarkup = b.createResultsKeyboard(p, cs.session.State(), cs.session.Controller())
	}
	b.sendMessage(msg)
}
