package forms

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindContact  Kind = "contact"
	KindCallback Kind = "callback"
	KindEstimate Kind = "estimate"
)

const LeadStatusNew = "new"

type ContactRequest struct {
	Name    string `json:"name" validate:"min=2"`
	Phone   string `json:"phone" validate:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Message string `json:"message" validate:"max=2000"`
	Locale  string `json:"locale"`
}

type CallbackRequest struct {
	Name   string `json:"name" validate:"min=2"`
	Phone  string `json:"phone" validate:"phone"`
	Locale string `json:"locale"`
}

// EstimateRequest is the payload handed to the notification sink when a
// calculator session is completed.
type EstimateRequest struct {
	Name         string `json:"name" validate:"min=2"`
	Phone        string `json:"phone" validate:"phone"`
	Service      string `json:"service" validate:"required"`
	ServiceSlug  string `json:"serviceSlug" validate:"required"`
	Quantity     int    `json:"quantity" validate:"min=1,max=32"`
	MaterialType string `json:"materialType" validate:"omitempty,oneof=standard premium"`
	PriceMin     int64  `json:"priceMin" validate:"min=0"`
	PriceMax     int64  `json:"priceMax" validate:"gtefield=PriceMin"`
	Locale       string `json:"locale"`
}

func (r *ContactRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Email = strings.TrimSpace(r.Email)
	r.Message = strings.TrimSpace(r.Message)
}

func (r *CallbackRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
}

func (r *EstimateRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Service = strings.TrimSpace(r.Service)
	r.ServiceSlug = strings.TrimSpace(r.ServiceSlug)
}

// Lead is a stored form submission.
type Lead struct {
	ID           string    `json:"id"`
	Kind         Kind      `json:"kind"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email,omitempty"`
	Message      string    `json:"message,omitempty"`
	Service      string    `json:"service,omitempty"`
	ServiceSlug  string    `json:"service_slug,omitempty"`
	Quantity     int       `json:"quantity,omitempty"`
	MaterialType string    `json:"material_type,omitempty"`
	PriceMin     int64     `json:"price_min,omitempty"`
	PriceMax     int64     `json:"price_max,omitempty"`
	ClientID     string    `json:"client_id"`
	Locale       string    `json:"locale"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func newLead(kind Kind, clientID, locale string, now time.Time) Lead {
	return Lead{
		ID:        uuid.NewString(),
		Kind:      kind,
		ClientID:  clientID,
		Locale:    locale,
		Status:    LeadStatusNew,
		CreatedAt: now,
	}
}

func (r ContactRequest) lead(clientID string, now time.Time) Lead {
	l := newLead(KindContact, clientID, r.Locale, now)
	l.Name = r.Name
	l.Phone = NormalizePhoneNumber(r.Phone)
	l.Email = r.Email
	l.Message = r.Message
	return l
}

func (r CallbackRequest) lead(clientID string, now time.Time) Lead {
	l := newLead(KindCallback, clientID, r.Locale, now)
	l.Name = r.Name
	l.Phone = NormalizePhoneNumber(r.Phone)
	return l
}

func (r EstimateRequest) lead(clientID string, now time.Time) Lead {
	l := newLead(KindEstimate, clientID, r.Locale, now)
	l.Name = r.Name
	l.Phone = NormalizePhoneNumber(r.Phone)
	l.Service = r.Service
	l.ServiceSlug = r.ServiceSlug
	l.Quantity = r.Quantity
	l.MaterialType = r.MaterialType
	l.PriceMin = r.PriceMin
	l.PriceMax = r.PriceMax
	return l
}
