package forms

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Service is the server side of the contact, callback and estimate forms.
type Service struct {
	repo     LeadRepository
	notifier Notifier
	limiter  RateLimiter
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(repo LeadRepository, notifier Notifier, limiter RateLimiter, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		limiter:  limiter,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) SubmitContact(ctx context.Context, clientID string, req ContactRequest) (Lead, error) {
	if err := s.checkRate(ctx, KindContact, clientID); err != nil {
		return Lead{}, err
	}
	if err := ValidateContact(&req); err != nil {
		return Lead{}, err
	}
	return s.deliver(ctx, req.lead(clientID, s.now().UTC()))
}

func (s *Service) SubmitCallback(ctx context.Context, clientID string, req CallbackRequest) (Lead, error) {
	if err := s.checkRate(ctx, KindCallback, clientID); err != nil {
		return Lead{}, err
	}
	if err := ValidateCallback(&req); err != nil {
		return Lead{}, err
	}
	return s.deliver(ctx, req.lead(clientID, s.now().UTC()))
}

func (s *Service) SubmitEstimate(ctx context.Context, clientID string, req EstimateRequest) (Lead, error) {
	if err := s.checkRate(ctx, KindEstimate, clientID); err != nil {
		return Lead{}, err
	}
	if err := ValidateEstimate(&req); err != nil {
		return Lead{}, err
	}
	return s.deliver(ctx, req.lead(clientID, s.now().UTC()))
}

// checkRate fails open when the counter store errors.
func (s *Service) checkRate(ctx context.Context, kind Kind, clientID string) error {
	if s.limiter == nil {
		return nil
	}

	decision, err := s.limiter.Allow(ctx, fmt.Sprintf("form:%s:%s", kind, clientID))
	if err != nil {
		s.logger.Warn("Rate limit check failed, allowing request",
			zap.String("kind", string(kind)),
			zap.String("client_id", clientID),
			zap.Error(err))
		return nil
	}
	if !decision.Allowed {
		s.logger.Info("Form submission rate limited",
			zap.String("kind", string(kind)),
			zap.String("client_id", clientID),
			zap.Duration("retry_after", decision.RetryAfter))
		return &RateLimitError{RetryAfter: decision.RetryAfter}
	}
	return nil
}

func (s *Service) deliver(ctx context.Context, lead Lead) (Lead, error) {
	if err := s.repo.SaveLead(ctx, lead); err != nil {
		s.logger.Error("Failed to save lead",
			zap.String("lead_id", lead.ID),
			zap.String("kind", string(lead.Kind)),
			zap.Error(err))
		return Lead{}, fmt.Errorf("%w: save lead: %v", ErrDeliveryFailed, err)
	}

	if err := s.notifier.NotifyLead(ctx, lead); err != nil {
		s.logger.Error("Failed to notify about lead",
			zap.String("lead_id", lead.ID),
			zap.String("kind", string(lead.Kind)),
			zap.Error(err))
		return Lead{}, fmt.Errorf("%w: notify: %v", ErrDeliveryFailed, err)
	}

	s.logger.Info("Lead delivered",
		zap.String("lead_id", lead.ID),
		zap.String("kind", string(lead.Kind)),
		zap.String("client_id", lead.ClientID))
	return lead, nil
}

// EstimateSubmitter is implemented by *Service.
type EstimateSubmitter interface {
	SubmitEstimate(ctx context.Context, clientID string, req EstimateRequest) (Lead, error)
}

var _ EstimateSubmitter = (*Service)(nil)

// ClientSink binds a submitter to one client identity so it can act as
// the estimate sink of a calculator session.
type ClientSink struct {
	Submitter EstimateSubmitter
	ClientID  string
}

func (c ClientSink) SubmitEstimate(ctx context.Context, req EstimateRequest) error {
	_, err := c.Submitter.SubmitEstimate(ctx, c.ClientID, req)
	return err
}
