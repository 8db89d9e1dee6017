package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"dentalsite/internal/forms"
)

var estimate = forms.EstimateRequest{
	Name:        "Anna Schmidt",
	Phone:       "+49 30 1234567",
	Service:     "Dental implant",
	ServiceSlug: "implant",
	Quantity:    1,
	PriceMin:    2000,
	PriceMax:    2750,
	Locale:      "de",
}

func TestServices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/services" || r.URL.Query().Get("locale") != "de" {
			t.Errorf("unexpected request %s", r.URL)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"locale":"de","services":[{"id":"implant","slug":"implantat","title":"Zahnimplantat","icon_ref":"icons/implant.svg"}]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, zap.NewNop())
	services, err := c.Services(context.Background(), "de")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(services) != 1 || services[0].Slug != "implantat" || services[0].IconRef != "icons/implant.svg" {
		t.Fatalf("got %+v", services)
	}
}

func TestServices_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, zap.NewNop())
	if _, err := c.Services(context.Background(), "en"); err == nil {
		t.Fatal("expected error")
	}
}

func TestSubmitEstimate(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header map[string]string
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "created",
			status: http.StatusCreated,
			body:   `{"id":"abc"}`,
			check: func(t *testing.T, err error) {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			},
		},
		{
			name:   "validation",
			status: http.StatusBadRequest,
			body:   `{"errors":{"phone":"Enter a valid phone number"}}`,
			check: func(t *testing.T, err error) {
				var verr *forms.ValidationError
				if !errors.As(err, &verr) || verr.Fields["phone"] == "" {
					t.Fatalf("expected validation error, got %v", err)
				}
			},
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			header: map[string]string{"Retry-After": "42"},
			body:   `{"error":"too many requests","retry_after":42}`,
			check: func(t *testing.T, err error) {
				var rerr *forms.RateLimitError
				if !errors.As(err, &rerr) || rerr.RetryAfter != 42*time.Second {
					t.Fatalf("expected rate limit error, got %v", err)
				}
			},
		},
		{
			name:   "bad gateway",
			status: http.StatusBadGateway,
			body:   `{"error":"lead delivery failed"}`,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, forms.ErrDeliveryFailed) {
					t.Fatalf("expected delivery failure, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/v1/forms/estimate" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL)
				}
				var got forms.EstimateRequest
				if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
					t.Errorf("decode: %v", err)
				}
				if got != estimate {
					t.Errorf("payload = %+v", got)
				}
				for k, v := range tt.header {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := NewClient(srv.URL, time.Second, zap.NewNop())
			tt.check(t, c.SubmitEstimate(context.Background(), estimate))
		})
	}
}

func TestSubmitEstimate_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second, zap.NewNop())
	if err := c.SubmitEstimate(context.Background(), estimate); !errors.Is(err, forms.ErrDeliveryFailed) {
		t.Fatalf("expected delivery failure, got %v", err)
	}
}

func TestSubmitEstimate_ClientIdentity(t *testing.T) {
	tests := []struct {
		name      string
		client    func(base *Client) *Client
		wantToken string
		wantID    string
	}{
		{
			name:      "per chat client",
			client:    func(base *Client) *Client { return base.WithInternalToken("s3cret").ForClient("tg:42") },
			wantToken: "s3cret",
			wantID:    "tg:42",
		},
		{
			name:   "no token",
			client: func(base *Client) *Client { return base.ForClient("tg:42") },
		},
		{
			name:   "no client id",
			client: func(base *Client) *Client { return base.WithInternalToken("s3cret") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("X-Internal-Token"); got != tt.wantToken {
					t.Errorf("token header = %q, want %q", got, tt.wantToken)
				}
				if got := r.Header.Get("X-Client-ID"); got != tt.wantID {
					t.Errorf("client id header = %q, want %q", got, tt.wantID)
				}
				w.WriteHeader(http.StatusCreated)
			}))
			defer srv.Close()

			c := tt.client(NewClient(srv.URL, time.Second, zap.NewNop()))
			if err := c.SubmitEstimate(context.Background(), estimate); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestForClient_LeavesBaseUntouched(t *testing.T) {
	base := NewClient("http://example.test", time.Second, zap.NewNop()).WithInternalToken("s3cret")
	a := base.ForClient("tg:1")
	b := base.ForClient("tg:2")

	if base.clientID != "" || a.clientID != "tg:1" || b.clientID != "tg:2" {
		t.Fatalf("client ids: base=%q a=%q b=%q", base.clientID, a.clientID, b.clientID)
	}
	if a.httpClient != base.httpClient {
		t.Fatal("expected shared http client")
	}
}
