package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dentalsite/internal/forms"
	response "dentalsite/internal/http/dto/response"
)

type FormsHandler struct {
	forms         FormSubmitter
	defaultLocale string
	internalToken string
	logger        *zap.Logger
}

func NewFormsHandler(submitter FormSubmitter, defaultLocale string, logger *zap.Logger) *FormsHandler {
	return &FormsHandler{forms: submitter, defaultLocale: defaultLocale, logger: logger}
}

// WithInternalToken lets callers holding token submit on behalf of the
// client named in X-Client-ID.
func (h *FormsHandler) WithInternalToken(token string) *FormsHandler {
	h.internalToken = token
	return h
}

func (h *FormsHandler) Contact(c *gin.Context) {
	var payload forms.ContactRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, errInvalidPayload)
		return
	}
	payload.Locale = resolveLocale(c, payload.Locale, h.defaultLocale)

	lead, err := h.forms.SubmitContact(c.Request.Context(), clientIdentity(c, h.internalToken), payload)
	h.respond(c, forms.KindContact, lead, err)
}

func (h *FormsHandler) Callback(c *gin.Context) {
	var payload forms.CallbackRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, errInvalidPayload)
		return
	}
	payload.Locale = resolveLocale(c, payload.Locale, h.defaultLocale)

	lead, err := h.forms.SubmitCallback(c.Request.Context(), clientIdentity(c, h.internalToken), payload)
	h.respond(c, forms.KindCallback, lead, err)
}

func (h *FormsHandler) Estimate(c *gin.Context) {
	var payload forms.EstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, errInvalidPayload)
		return
	}
	payload.Locale = resolveLocale(c, payload.Locale, h.defaultLocale)

	lead, err := h.forms.SubmitEstimate(c.Request.Context(), clientIdentity(c, h.internalToken), payload)
	h.respond(c, forms.KindEstimate, lead, err)
}

func (h *FormsHandler) respond(c *gin.Context, kind forms.Kind, lead forms.Lead, err error) {
	if err != nil {
		h.logger.Info("Form submission rejected",
			zap.String("kind", string(kind)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("client_id", clientIdentity(c, h.internalToken)),
			zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.LeadCreatedResponse{ID: lead.ID, Status: lead.Status})
}
