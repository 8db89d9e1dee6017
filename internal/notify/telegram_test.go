package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"dentalsite/internal/forms"
)

type fakeSender struct {
	mu       sync.Mutex
	failures map[int64]int
	sent     []tgbotapi.MessageConfig
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	msg, ok := c.(tgbotapi.MessageConfig)
	if !ok {
		return tgbotapi.Message{}, errors.New("unexpected chattable")
	}
	if f.failures[msg.ChatID] != 0 {
		if f.failures[msg.ChatID] > 0 {
			f.failures[msg.ChatID]--
		}
		return tgbotapi.Message{}, errors.New("telegram: Bad Gateway")
	}
	f.sent = append(f.sent, msg)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func noWait() backoff.BackOff {
	return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 2)
}

var estimateLead = forms.Lead{
	ID:           "lead-1",
	Kind:         forms.KindEstimate,
	Name:         "Anna Schmidt",
	Phone:        "+49301234567",
	Service:      "Dental implant",
	ServiceSlug:  "implant",
	Quantity:     2,
	MaterialType: "standard",
	PriceMin:     4000,
	PriceMax:     5500,
	Locale:       "de",
	CreatedAt:    time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
}

func TestNotifyLead_AllAdmins(t *testing.T) {
	sender := &fakeSender{}
	n := NewTelegramNotifier(sender, []int64{10, 0, 20}, zap.NewNop()).WithBackOff(noWait)

	if err := n.NotifyLead(context.Background(), estimateLead); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(sender.sent))
	}
	if sender.sent[0].ChatID != 10 || sender.sent[1].ChatID != 20 {
		t.Fatalf("unexpected recipients: %d, %d", sender.sent[0].ChatID, sender.sent[1].ChatID)
	}
}

func TestNotifyLead_RetriesTransientFailure(t *testing.T) {
	sender := &fakeSender{failures: map[int64]int{10: 2}}
	n := NewTelegramNotifier(sender, []int64{10}, zap.NewNop()).WithBackOff(noWait)

	if err := n.NotifyLead(context.Background(), estimateLead); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected delivery after retries, got %d messages", len(sender.sent))
	}
}

func TestNotifyLead_PartialFailure(t *testing.T) {
	sender := &fakeSender{failures: map[int64]int{10: -1}}
	n := NewTelegramNotifier(sender, []int64{10, 20}, zap.NewNop()).WithBackOff(noWait)

	if err := n.NotifyLead(context.Background(), estimateLead); err != nil {
		t.Fatalf("one admin reached should be enough, got %v", err)
	}
}

func TestNotifyLead_AllFail(t *testing.T) {
	sender := &fakeSender{failures: map[int64]int{10: -1}}
	n := NewTelegramNotifier(sender, []int64{10}, zap.NewNop()).WithBackOff(noWait)

	if err := n.NotifyLead(context.Background(), estimateLead); err == nil {
		t.Fatal("expected error")
	}
}

func TestNotifyLead_NoAdmins(t *testing.T) {
	n := NewTelegramNotifier(&fakeSender{}, nil, zap.NewNop())

	if err := n.NotifyLead(context.Background(), estimateLead); !errors.Is(err, ErrNoRecipients) {
		t.Fatalf("expected ErrNoRecipients, got %v", err)
	}
}

func TestFormatLeadNotification(t *testing.T) {
	text := FormatLeadNotification(estimateLead)
	for _, want := range []string{
		"New price estimate",
		"Name: Anna Schmidt",
		"Service: Dental implant (implant)",
		"Quantity: 2",
		"Material: standard",
		"Estimate: 4000 – 5500",
		"Locale: de",
		"2024-03-05 14:30",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("notification missing %q:\n%s", want, text)
		}
	}

	callback := FormatLeadNotification(forms.Lead{Kind: forms.KindCallback, Name: "Ivan", Phone: "+79991234567"})
	if !strings.Contains(callback, "Callback requested") || strings.Contains(callback, "Estimate:") {
		t.Errorf("unexpected callback notification:\n%s", callback)
	}
}
