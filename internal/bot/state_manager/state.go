package state_manager

import (
	"context"
	"fmt"

	"dentalsite/internal/storage/redis"
)

// ChatStateManager keeps one wizard record per Telegram chat.
type ChatStateManager struct {
	redisStorage RedisStorage
}

func New(redisStorage RedisStorage) *ChatStateManager {
	return &ChatStateManager{redisStorage: redisStorage}
}

func (u *ChatStateManager) GetChatState(ctx context.Context, chatID int64) (redis.WizardRecord, bool, error) {
	rec, found, err := u.redisStorage.GetWizard(ctx, chatKey(chatID))
	if err != nil {
		return redis.WizardRecord{}, false, fmt.Errorf("redisStorage.GetWizard failed: %w", err)
	}
	return rec, found, nil
}

func (u *ChatStateManager) SetChatState(ctx context.Context, chatID int64, rec redis.WizardRecord) error {
	if err := u.redisStorage.SaveWizard(ctx, chatKey(chatID), rec); err != nil {
		return fmt.Errorf("redisStorage.SaveWizard failed: %w", err)
	}
	return nil
}

func (u *ChatStateManager) ClearState(ctx context.Context, chatID int64) error {
	return u.redisStorage.DropWizard(ctx, chatKey(chatID))
}

func chatKey(chatID int64) string {
	return fmt.Sprintf("tg:%d", chatID)
}
