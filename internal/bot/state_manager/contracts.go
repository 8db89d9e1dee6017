package state_manager

import (
	"context"

	"dentalsite/internal/storage/redis"
)

type RedisStorage interface {
	GetWizard(ctx context.Context, key string) (redis.WizardRecord, bool, error)
	SaveWizard(ctx context.Context, key string, rec redis.WizardRecord) error
	DropWizard(ctx context.Context, key string) error
}

var _ RedisStorage = (*redis.Storage)(nil)
