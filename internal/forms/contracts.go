package forms

import (
	"context"

	"dentalsite/internal/ratelimit"
)

type LeadRepository interface {
	SaveLead(ctx context.Context, lead Lead) error
}

// Notifier delivers a stored lead to clinic staff.
type Notifier interface {
	NotifyLead(ctx context.Context, lead Lead) error
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (ratelimit.Decision, error)
}

var _ RateLimiter = (*ratelimit.Limiter)(nil)
