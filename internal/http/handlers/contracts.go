package handlers

import (
	"context"

	"dentalsite/internal/catalog"
	"dentalsite/internal/forms"
	redisstore "dentalsite/internal/storage/redis"
)

//go:generate mockgen -source=contracts.go -destination=mocks/contracts_mock.go -package=mocks

type CatalogLoader interface {
	Load(ctx context.Context, locale string) []catalog.Service
}

type FormSubmitter interface {
	SubmitContact(ctx context.Context, clientID string, req forms.ContactRequest) (forms.Lead, error)
	SubmitCallback(ctx context.Context, clientID string, req forms.CallbackRequest) (forms.Lead, error)
	SubmitEstimate(ctx context.Context, clientID string, req forms.EstimateRequest) (forms.Lead, error)
}

type WizardStore interface {
	GetWizard(ctx context.Context, key string) (redisstore.WizardRecord, bool, error)
	SaveWizard(ctx context.Context, key string, rec redisstore.WizardRecord) error
	DropWizard(ctx context.Context, key string) error
	AcquireSubmitLock(ctx context.Context, key string) (bool, error)
	ReleaseSubmitLock(ctx context.Context, key string) error
}

var (
	_ CatalogLoader = (*catalog.Catalog)(nil)
	_ FormSubmitter = (*forms.Service)(nil)
	_ WizardStore   = (*redisstore.Storage)(nil)
)
