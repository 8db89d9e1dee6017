package handlers

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	request "dentalsite/internal/http/dto/request"
)

const maxClientIDLength = 128

// clientIdentity returns the key the form rate limit is counted under.
// X-Client-ID is only honoured when the caller presents the internal token.
func clientIdentity(c *gin.Context, internalToken string) string {
	if internalToken == "" {
		return c.ClientIP()
	}
	token := c.GetHeader(request.HeaderInternalToken)
	if subtle.ConstantTimeCompare([]byte(token), []byte(internalToken)) != 1 {
		return c.ClientIP()
	}
	id := strings.TrimSpace(c.GetHeader(request.HeaderClientID))
	if id == "" || len(id) > maxClientIDLength {
		return c.ClientIP()
	}
	return id
}
