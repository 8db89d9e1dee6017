package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"dentalsite/internal/catalog"
	"dentalsite/internal/forms"
	request "dentalsite/internal/http/dto/request"
)

// Client talks to the dentalsite HTTP API. It lets a front-end running in
// another process use the server's catalog and form endpoints.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	logger        *zap.Logger
	internalToken string
	clientID      string
}

var _ catalog.Source = (*Client)(nil)

type servicesResponse struct {
	Locale   string            `json:"locale"`
	Services []catalog.Service `json:"services"`
}

type errorResponse struct {
	Error      string            `json:"error"`
	Errors     map[string]string `json:"errors"`
	RetryAfter int               `json:"retry_after"`
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// WithInternalToken sets the token the server expects before it trusts
// X-Client-ID.
func (c *Client) WithInternalToken(token string) *Client {
	c.internalToken = token
	return c
}

// ForClient returns a copy that submits forms on behalf of clientID, so the
// server rate limits each end user separately. The copy shares the
// underlying http.Client.
func (c *Client) ForClient(clientID string) *Client {
	cp := *c
	cp.clientID = clientID
	return &cp
}

func (c *Client) Services(ctx context.Context, locale string) ([]catalog.Service, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s/v1/services?locale=%s", c.baseURL, url.QueryEscape(locale)),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var body servicesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return body.Services, nil
}

func (c *Client) SubmitContact(ctx context.Context, req forms.ContactRequest) error {
	return c.postForm(ctx, forms.KindContact, req)
}

func (c *Client) SubmitCallback(ctx context.Context, req forms.CallbackRequest) error {
	return c.postForm(ctx, forms.KindCallback, req)
}

func (c *Client) SubmitEstimate(ctx context.Context, req forms.EstimateRequest) error {
	return c.postForm(ctx, forms.KindEstimate, req)
}

// postForm maps the server's status codes back to the form error types:
// 400 to *forms.ValidationError, 429 to *forms.RateLimitError and any other
// failure, transport errors included, to forms.ErrDeliveryFailed.
func (c *Client) postForm(ctx context.Context, kind forms.Kind, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		fmt.Sprintf("%s/v1/forms/%s", c.baseURL, kind),
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.internalToken != "" && c.clientID != "" {
		httpReq.Header.Set(request.HeaderInternalToken, c.internalToken)
		httpReq.Header.Set(request.HeaderClientID, c.clientID)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("Form submission request failed",
			zap.String("kind", string(kind)),
			zap.Error(err))
		return fmt.Errorf("%w: %v", forms.ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK {
		return nil
	}

	var errBody errorResponse
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(data, &errBody)

	switch resp.StatusCode {
	case http.StatusBadRequest:
		if len(errBody.Errors) > 0 {
			return &forms.ValidationError{Fields: errBody.Errors}
		}
		return fmt.Errorf("bad request: %s", errBody.Error)
	case http.StatusTooManyRequests:
		return &forms.RateLimitError{RetryAfter: retryAfter(resp.Header.Get("Retry-After"), errBody.RetryAfter)}
	default:
		return fmt.Errorf("%w: unexpected status %d", forms.ErrDeliveryFailed, resp.StatusCode)
	}
}

func retryAfter(header string, fallback int) time.Duration {
	if secs, err := strconv.Atoi(header); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if fallback > 0 {
		return time.Duration(fallback) * time.Second
	}
	return time.Minute
}
