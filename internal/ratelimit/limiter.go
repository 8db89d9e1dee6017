package ratelimit

import (
	"context"
	"fmt"
	"time"
)

const (
	DefaultLimit  = 5
	DefaultWindow = 60 * time.Second
)

// Store keeps one counter per key. Increment adds one hit to the window
// that is open for key (opening a new one of length window if none is)
// and returns the hit count plus the time left until the window closes.
type Store interface {
	Increment(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)
}

type Decision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// Limiter is a fixed-window counter: at most limit hits per key per window.
type Limiter struct {
	store  Store
	limit  int64
	window time.Duration
}

func New(store Store, limit int64, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{store: store, limit: limit, window: window}
}

func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	count, ttl, err := l.store.Increment(ctx, key, l.window)
	if err != nil {
		return Decision{}, fmt.Errorf("increment rate limit counter: %w", err)
	}

	if count > l.limit {
		if ttl <= 0 {
			ttl = l.window
		}
		return Decision{Allowed: false, RetryAfter: ttl}, nil
	}
	return Decision{Allowed: true, Remaining: l.limit - count}, nil
}

func (l *Limiter) Limit() int64 { return l.limit }

func (l *Limiter) Window() time.Duration { return l.window }
