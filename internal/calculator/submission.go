package calculator

import (
	"context"
	"errors"

	"dentalsite/internal/forms"
)

var (
	ErrNotReady           = errors.New("wizard has no completed estimate")
	ErrSubmissionInFlight = errors.New("estimate submission already in flight")
	ErrSessionClosed      = errors.New("wizard session closed")
)

// EstimateSink accepts a completed estimate with contact details.
type EstimateSink interface {
	SubmitEstimate(ctx context.Context, req forms.EstimateRequest) error
}

type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// EstimateRequest packages a finished wizard for the notification sink.
// The state must be on the results step with a known service.
func (c *Controller) EstimateRequest(s State, contact Contact, locale string) (forms.EstimateRequest, error) {
	if s.Step != StepResults {
		return forms.EstimateRequest{}, ErrNotReady
	}
	svc, ok := c.Service(s.SelectedServiceID)
	if !ok {
		return forms.EstimateRequest{}, ErrNotReady
	}

	estimate := c.resolver.Resolve(svc.Slug, s.Quantity, s.MaterialTier)
	return forms.EstimateRequest{
		Name:         contact.Name,
		Phone:        contact.Phone,
		Service:      svc.Title,
		ServiceSlug:  svc.Slug,
		Quantity:     s.Quantity,
		MaterialType: string(s.MaterialTier),
		PriceMin:     estimate.MinTotal,
		PriceMax:     estimate.MaxTotal,
		Locale:       locale,
	}, nil
}
