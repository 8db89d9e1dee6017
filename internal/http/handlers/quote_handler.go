package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/currency"

	"dentalsite/internal/calculator"
	response "dentalsite/internal/http/dto/response"
)

type QuoteHandler struct {
	resolver      *calculator.Resolver
	currency      currency.Unit
	defaultLocale string
}

func NewQuoteHandler(resolver *calculator.Resolver, cur currency.Unit, defaultLocale string) *QuoteHandler {
	return &QuoteHandler{resolver: resolver, currency: cur, defaultLocale: defaultLocale}
}

// Quote resolves a price range for a slug without a wizard session.
func (h *QuoteHandler) Quote(c *gin.Context) {
	slug := strings.TrimSpace(c.Query("slug"))

	quantity := calculator.MinQuantity
	if raw := c.Query("quantity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			body := response.NewError("INVALID_QUANTITY", "quantity must be a whole number")
			c.JSON(http.StatusBadRequest, body)
			return
		}
		quantity = calculator.ClampQuantity(n)
	}

	tier, ok := calculator.ParseMaterialTier(c.Query("material"))
	if !ok {
		c.JSON(http.StatusBadRequest, response.NewError("INVALID_MATERIAL", "material must be standard or premium"))
		return
	}

	entry, matched := h.resolver.Lookup(slug)
	estimate := entry.Estimate(quantity, tier)
	locale := resolveLocale(c, c.Query("locale"), h.defaultLocale)

	c.JSON(http.StatusOK, response.QuoteResponse{
		Slug:      slug,
		Matched:   matched,
		Key:       entry.Key,
		Quantity:  quantity,
		Material:  string(tier),
		MinTotal:  estimate.MinTotal,
		MaxTotal:  estimate.MaxTotal,
		Formatted: calculator.FormatRange(estimate, locale, h.currency),
	})
}
