package redis

import (
	"time"

	"dentalsite/internal/calculator"
)

// WizardRecord is a calculator session persisted between requests or chat
// updates. Revision grows with every state change.
type WizardRecord struct {
	Revision  uint64             `json:"revision"`
	State     calculator.State   `json:"state"`
	Locale    string             `json:"locale"`
	Contact   calculator.Contact `json:"contact"`
	Awaiting  string             `json:"awaiting,omitempty"`
	UpdatedAt time.Time          `json:"updated_at"`
}
