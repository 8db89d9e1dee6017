package request

import (
	"strings"

	"dentalsite/internal/calculator"
)

type StartWizardRequest struct {
	Locale string `json:"locale"`
}

// WizardActionRequest is one reducer action sent by the page.
type WizardActionRequest struct {
	Type      string `json:"type" binding:"required"`
	ServiceID string `json:"service_id"`
	Quantity  int    `json:"quantity"`
	Material  string `json:"material"`
}

func (r WizardActionRequest) Action() calculator.Action {
	return calculator.Action{
		Type:      calculator.ActionType(strings.TrimSpace(r.Type)),
		ServiceID: strings.TrimSpace(r.ServiceID),
		Quantity:  r.Quantity,
		Material:  calculator.MaterialTier(strings.TrimSpace(r.Material)),
	}
}

type WizardSubmitRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (r WizardSubmitRequest) Contact() calculator.Contact {
	return calculator.Contact{Name: r.Name, Phone: r.Phone}
}
