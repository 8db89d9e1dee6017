package notify

import (
	"context"

	"go.uber.org/zap"

	"dentalsite/internal/forms"
)

// LogNotifier only logs leads. Used when Telegram is disabled.
type LogNotifier struct {
	logger *zap.Logger
}

var _ forms.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyLead(_ context.Context, lead forms.Lead) error {
	n.logger.Info("New lead",
		zap.String("lead_id", lead.ID),
		zap.String("kind", string(lead.Kind)),
		zap.String("service_slug", lead.ServiceSlug),
		zap.Int64("price_min", lead.PriceMin),
		zap.Int64("price_max", lead.PriceMax))
	return nil
}
