package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	response "dentalsite/internal/http/dto/response"
)

type CatalogHandler struct {
	catalog       CatalogLoader
	defaultLocale string
}

func NewCatalogHandler(catalog CatalogLoader, defaultLocale string) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, defaultLocale: defaultLocale}
}

// ListServices returns the ordered services of a locale. An unavailable
// catalog is an empty list, not an error.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	locale := resolveLocale(c, c.Query("locale"), h.defaultLocale)
	c.JSON(http.StatusOK, response.ServicesResponse{
		Locale:   locale,
		Services: h.catalog.Load(c.Request.Context(), locale),
	})
}
