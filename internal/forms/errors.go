package forms

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrDeliveryFailed means the lead could not be handed to the clinic.
// The caller keeps the entered data and may retry.
var ErrDeliveryFailed = errors.New("lead delivery failed")

// ValidationError maps a payload field name to a user-facing message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid fields: %s", strings.Join(names, ", "))
}

// RateLimitError is returned when a client exceeded its submission window.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}
