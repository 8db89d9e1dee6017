package commands

import (
	"context"
	"fmt"

	"dentalsite/internal/storage"
	redisstore "dentalsite/internal/storage/redis"
	"dentalsite/pkg/redis"
)

func openRedis(ctx context.Context) (*redis.Client, *redisstore.Storage, error) {
	client := redis.New(redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, redisstore.New(client, cfg.Redis.TTL), nil
}

// openPostgres connects to the database. cache may be nil for commands
// that only touch leads.
func openPostgres(ctx context.Context, cache storage.Cache) (*storage.PostgresStorage, error) {
	pg, err := storage.NewPostgresStorage(ctx, cfg.Database, cache, log)
	if err != nil {
		return nil, fmt.Errorf("failed to init PostgreSQL storage: %w", err)
	}
	return pg, nil
}
