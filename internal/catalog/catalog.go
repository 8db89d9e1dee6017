package catalog

import (
	"context"

	"go.uber.org/zap"
)

// Service is one sellable treatment category shown in the calculator.
type Service struct {
	ID      string `json:"id"`
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	IconRef string `json:"icon_ref"`
}

// Source reads the ordered service list for a locale from the content store.
type Source interface {
	Services(ctx context.Context, locale string) ([]Service, error)
}

type Catalog struct {
	source Source
	logger *zap.Logger
}

func New(source Source, logger *zap.Logger) *Catalog {
	return &Catalog{source: source, logger: logger}
}

// Load never fails: an unreachable or empty source yields an empty
// catalog, which callers render as "no services available".
func (c *Catalog) Load(ctx context.Context, locale string) []Service {
	services, err := c.source.Services(ctx, locale)
	if err != nil {
		c.logger.Warn("Failed to load service catalog, serving empty catalog",
			zap.String("locale", locale),
			zap.Error(err))
		return []Service{}
	}
	if len(services) == 0 {
		c.logger.Info("Service catalog is empty", zap.String("locale", locale))
		return []Service{}
	}
	return services
}

// Find returns the service with the given id.
func Find(services []Service, id string) (Service, bool) {
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}
