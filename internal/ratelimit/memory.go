package ratelimit

import (
	"context"
	"sync"
	"time"
)

// sweepThreshold bounds how many keys accumulate before expired
// windows are dropped.
const sweepThreshold = 1024

type counter struct {
	count   int64
	resetAt time.Time
}

// MemoryStore is a process-local Store. Counters are lost on restart.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]*counter
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		counters: make(map[string]*counter),
		now:      now,
	}
}

func (m *MemoryStore) Increment(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if len(m.counters) >= sweepThreshold {
		m.sweep(now)
	}

	c, ok := m.counters[key]
	if !ok || !now.Before(c.resetAt) {
		c = &counter{resetAt: now.Add(window)}
		m.counters[key] = c
	}
	c.count++

	return c.count, c.resetAt.Sub(now), nil
}

func (m *MemoryStore) sweep(now time.Time) {
	for key, c := range m.counters {
		if !now.Before(c.resetAt) {
			delete(m.counters, key)
		}
	}
}

var _ Store = (*MemoryStore)(nil)
