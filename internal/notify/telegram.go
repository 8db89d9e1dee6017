package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"dentalsite/internal/forms"
)

var ErrNoRecipients = errors.New("no admin chat configured")

// Sender is the part of the Telegram API used for notifications.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

var (
	_ forms.Notifier = (*TelegramNotifier)(nil)
	_ Sender         = (*tgbotapi.BotAPI)(nil)
)

// TelegramNotifier sends every new lead to the clinic admins.
type TelegramNotifier struct {
	sender     Sender
	adminIDs   []int64
	logger     *zap.Logger
	newBackOff func() backoff.BackOff
}

func NewTelegramNotifier(sender Sender, adminIDs []int64, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		sender:     sender,
		adminIDs:   adminIDs,
		logger:     logger,
		newBackOff: defaultBackOff,
	}
}

// WithBackOff replaces the retry policy used per admin chat.
func (n *TelegramNotifier) WithBackOff(newBackOff func() backoff.BackOff) *TelegramNotifier {
	n.newBackOff = newBackOff
	return n
}

func defaultBackOff() backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 5 * time.Second
	policy.MaxElapsedTime = 20 * time.Second
	return policy
}

// NotifyLead succeeds when at least one admin received the message.
func (n *TelegramNotifier) NotifyLead(ctx context.Context, lead forms.Lead) error {
	if len(n.adminIDs) == 0 {
		n.logger.Warn("Admin notifications disabled - no admin IDs configured",
			zap.String("lead_id", lead.ID))
		return ErrNoRecipients
	}

	text := FormatLeadNotification(lead)

	var delivered int
	var lastErr error
	for _, chatID := range n.adminIDs {
		if chatID == 0 {
			continue
		}
		if err := n.send(ctx, chatID, text); err != nil {
			n.logger.Error("Failed to send admin notification",
				zap.Int64("chat_id", chatID),
				zap.String("lead_id", lead.ID),
				zap.Error(err))
			lastErr = err
			continue
		}
		delivered++
	}

	if delivered == 0 {
		if lastErr == nil {
			return ErrNoRecipients
		}
		return fmt.Errorf("notify lead %s: %w", lead.ID, lastErr)
	}
	return nil
}

func (n *TelegramNotifier) send(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true

	return backoff.RetryNotify(
		func() error {
			_, err := n.sender.Send(msg)
			return err
		},
		backoff.WithContext(n.newBackOff(), ctx),
		func(err error, next time.Duration) {
			n.logger.Warn("Telegram send failed, retrying...",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
				zap.Duration("next_attempt_in", next))
		},
	)
}
