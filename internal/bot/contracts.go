package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"dentalsite/internal/calculator"
	"dentalsite/internal/catalog"
	"dentalsite/internal/forms"
	"dentalsite/internal/storage"
	"dentalsite/internal/storage/redis"
)

// API is the part of the Telegram Bot API the bot uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type CatalogLoader interface {
	Load(ctx context.Context, locale string) []catalog.Service
}

type StateManager interface {
	GetChatState(ctx context.Context, chatID int64) (redis.WizardRecord, bool, error)
	SetChatState(ctx context.Context, chatID int64, rec redis.WizardRecord) error
	ClearState(ctx context.Context, chatID int64) error
}

// LeadExporter backs the admin commands.
type LeadExporter interface {
	ListLeads(ctx context.Context, limit int) ([]forms.Lead, error)
	LeadStatistics(ctx context.Context) (*storage.LeadStatistics, error)
}

// SinkFactory returns the estimate sink for one chat.
type SinkFactory func(chatID int64) calculator.EstimateSink

var (
	_ API          = (*tgbotapi.BotAPI)(nil)
	_ LeadExporter = (*storage.PostgresStorage)(nil)
)
