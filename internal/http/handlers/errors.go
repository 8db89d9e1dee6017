package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dentalsite/internal/calculator"
	"dentalsite/internal/forms"
	response "dentalsite/internal/http/dto/response"
)

var (
	errInvalidPayload  = response.NewError("INVALID_PAYLOAD", "Invalid request payload")
	errWizardNotFound  = response.NewError("WIZARD_NOT_FOUND", "Wizard session not found or expired")
	errInternal        = response.NewError("INTERNAL_ERROR", "An internal error occurred")
	errSubmitInFlight  = response.NewError("SUBMISSION_IN_FLIGHT", "A submission for this wizard is already in progress")
	errWizardNotReady  = response.NewError("WIZARD_NOT_READY", "The wizard has no completed estimate yet")
	errDeliveryFailed  = response.NewError("DELIVERY_FAILED", "We could not deliver your request, please try again")
	errRequestCanceled = response.NewError("REQUEST_CANCELED", "The request was canceled")
)

// writeError maps form and wizard errors to HTTP responses.
func writeError(c *gin.Context, err error) {
	var verr *forms.ValidationError
	var rerr *forms.RateLimitError

	switch {
	case errors.As(err, &verr):
		body := response.NewError("VALIDATION_FAILED", "Some fields are invalid")
		body.Errors = verr.Fields
		c.JSON(http.StatusBadRequest, body)
	case errors.As(err, &rerr):
		secs := int(math.Ceil(rerr.RetryAfter.Seconds()))
		if secs < 1 {
			secs = 1
		}
		c.Header("Retry-After", strconv.Itoa(secs))
		body := response.NewError("RATE_LIMITED", "Too many requests, please try again later")
		body.RetryAfter = secs
		c.JSON(http.StatusTooManyRequests, body)
	case errors.Is(err, calculator.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, errSubmitInFlight)
	case errors.Is(err, calculator.ErrNotReady), errors.Is(err, calculator.ErrSessionClosed):
		c.JSON(http.StatusConflict, errWizardNotReady)
	case errors.Is(err, forms.ErrDeliveryFailed):
		c.JSON(http.StatusBadGateway, errDeliveryFailed)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, errRequestCanceled)
	default:
		c.JSON(http.StatusInternalServerError, errInternal)
	}
}
