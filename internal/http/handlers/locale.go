package handlers

import (
	"github.com/gin-gonic/gin"

	"dentalsite/internal/catalog"
)

// resolveLocale prefers an explicit locale, then Accept-Language, then the
// configured default.
func resolveLocale(c *gin.Context, explicit, fallback string) string {
	return catalog.MatchLocale(explicit, c.GetHeader("Accept-Language"), fallback)
}
