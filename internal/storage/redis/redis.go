package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"dentalsite/internal/ratelimit"
	redisclient "dentalsite/pkg/redis"
)

const (
	stateTTL      = 24 * time.Hour
	submitLockTTL = 30 * time.Second
)

// Client is the subset of the Redis client the storage needs.
type Client interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	SetNX(ctx context.Context, key string, data []byte, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
}

var (
	_ Client          = (*redisclient.Client)(nil)
	_ ratelimit.Store = (*Storage)(nil)
)

type Storage struct {
	client Client
	ttl    time.Duration
}

// New wraps a Redis client. A non-positive ttl falls back to 24h.
func New(client Client, ttl time.Duration) *Storage {
	if ttl <= 0 {
		ttl = stateTTL
	}
	return &Storage{client: client, ttl: ttl}
}

// GetWizard loads a wizard record. Missing keys report found=false.
func (s *Storage) GetWizard(ctx context.Context, key string) (WizardRecord, bool, error) {
	data, err := s.client.Get(ctx, buildWizardKey(key))
	if redisclient.IsNil(err) {
		return WizardRecord{}, false, nil
	}
	if err != nil {
		return WizardRecord{}, false, fmt.Errorf("get wizard: %w", err)
	}

	var rec WizardRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return WizardRecord{}, false, fmt.Errorf("unmarshal failure: %w", err)
	}
	return rec, true, nil
}

func (s *Storage) SaveWizard(ctx context.Context, key string, rec WizardRecord) error {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal wizard: %w", err)
	}
	return s.client.Set(ctx, buildWizardKey(key), data, s.ttl)
}

func (s *Storage) DropWizard(ctx context.Context, key string) error {
	return s.client.Del(ctx, buildWizardKey(key), buildLockKey(key))
}

// AcquireSubmitLock marks a wizard submission as in flight. It returns false
// if another submission holds the lock.
func (s *Storage) AcquireSubmitLock(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, buildLockKey(key), []byte("1"), submitLockTTL)
	if err != nil {
		return false, fmt.Errorf("acquire submit lock: %w", err)
	}
	return ok, nil
}

func (s *Storage) ReleaseSubmitLock(ctx context.Context, key string) error {
	return s.client.Del(ctx, buildLockKey(key))
}

// Increment counts a hit in the current fixed window of key.
func (s *Storage) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	rk := buildRateKey(key)
	count, err := s.client.Incr(ctx, rk)
	if err != nil {
		return 0, 0, fmt.Errorf("incr %s: %w", rk, err)
	}
	if count == 1 {
		if _, err := s.client.Expire(ctx, rk, window); err != nil {
			return 0, 0, fmt.Errorf("expire %s: %w", rk, err)
		}
		return count, window, nil
	}

	ttl, err := s.client.TTL(ctx, rk)
	if err != nil {
		return 0, 0, fmt.Errorf("ttl %s: %w", rk, err)
	}
	if ttl < 0 {
		// expire was lost, start a new window from here
		if _, err := s.client.Expire(ctx, rk, window); err != nil {
			return 0, 0, fmt.Errorf("expire %s: %w", rk, err)
		}
		ttl = window
	}
	return count, ttl, nil
}

// Get and Set expose the raw cache for the catalog read-through.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	return s.client.Get(ctx, buildCacheKey(key))
}

func (s *Storage) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.client.Set(ctx, buildCacheKey(key), data, ttl)
}

func (s *Storage) Del(ctx context.Context, key string) error {
	return s.client.Del(ctx, buildCacheKey(key))
}

func buildWizardKey(key string) string {
	return fmt.Sprintf("wizard:%s", key)
}

func buildLockKey(key string) string {
	return fmt.Sprintf("wizard-lock:%s", key)
}

func buildRateKey(key string) string {
	return fmt.Sprintf("ratelimit:%s", key)
}

func buildCacheKey(key string) string {
	return fmt.Sprintf("cache:%s", key)
}
