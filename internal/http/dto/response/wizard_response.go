package response

import (
	"dentalsite/internal/calculator"
	"dentalsite/internal/catalog"
)

type EstimateResponse struct {
	MinTotal  int64  `json:"min_total"`
	MaxTotal  int64  `json:"max_total"`
	Formatted string `json:"formatted"`
}

// WizardResponse is everything a page needs to render the current step.
type WizardResponse struct {
	ID               string              `json:"id"`
	Locale           string              `json:"locale"`
	State            calculator.State    `json:"state"`
	Services         []catalog.Service   `json:"services"`
	CanAdvance       bool                `json:"can_advance"`
	CanRetreat       bool                `json:"can_retreat"`
	RequiresMaterial bool                `json:"requires_material"`
	Estimate         *EstimateResponse   `json:"estimate,omitempty"`
	Contact          *calculator.Contact `json:"contact,omitempty"`
}

type WizardSubmitResponse struct {
	Status string `json:"status"`
}
