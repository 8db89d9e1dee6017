package response

import (
	"dentalsite/internal/catalog"
)

type ServicesResponse struct {
	Locale   string            `json:"locale"`
	Services []catalog.Service `json:"services"`
}

type QuoteResponse struct {
	Slug      string `json:"slug"`
	Matched   bool   `json:"matched"`
	Key       string `json:"key"`
	Quantity  int    `json:"quantity"`
	Material  string `json:"material,omitempty"`
	MinTotal  int64  `json:"min_total"`
	MaxTotal  int64  `json:"max_total"`
	Formatted string `json:"formatted"`
}

type LeadCreatedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
