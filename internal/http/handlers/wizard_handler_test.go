package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"golang.org/x/text/currency"

	"dentalsite/internal/calculator"
	"dentalsite/internal/catalog"
	"dentalsite/internal/forms"
	"dentalsite/internal/http/dto/response"
	"dentalsite/internal/http/handlers/mocks"
	redisstore "dentalsite/internal/storage/redis"
)

const wizardID = "6f1d3c1e-8a55-4c1b-9a43-2f0a6d1f7b10"

var wizardServices = []catalog.Service{
	{ID: "implant", Slug: "implant", Title: "Dental implant", IconRef: "icons/implant.svg"},
	{ID: "whitening", Slug: "whitening", Title: "Teeth whitening", IconRef: "icons/whitening.svg"},
}

type wizardFixture struct {
	catalog *mocks.MockCatalogLoader
	store   *mocks.MockWizardStore
	forms   *mocks.MockFormSubmitter
	router  *gin.Engine
}

func newWizardFixture(t *testing.T) *wizardFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	f := &wizardFixture{
		catalog: mocks.NewMockCatalogLoader(ctrl),
		store:   mocks.NewMockWizardStore(ctrl),
		forms:   mocks.NewMockFormSubmitter(ctrl),
	}
	f.catalog.EXPECT().Load(gomock.Any(), gomock.Any()).Return(wizardServices).AnyTimes()

	h := NewWizardHandler(WizardHandlerConfig{
		Catalog:       f.catalog,
		Resolver:      calculator.DefaultResolver(),
		Store:         f.store,
		Forms:         f.forms,
		Currency:      currency.EUR,
		DefaultLocale: "en",
		Logger:        zap.NewNop(),
	})

	r := gin.New()
	r.POST("/v1/wizard", h.Start)
	r.GET("/v1/wizard/:id", h.Get)
	r.DELETE("/v1/wizard/:id", h.Delete)
	r.POST("/v1/wizard/:id/actions", h.Dispatch)
	r.POST("/v1/wizard/:id/submit", h.Submit)
	f.router = r
	return f
}

func decodeWizard(t *testing.T, w *httptest.ResponseRecorder) response.WizardResponse {
	t.Helper()
	var resp response.WizardResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v (%s)", err, w.Body.String())
	}
	return resp
}

func resultsRecord() redisstore.WizardRecord {
	return redisstore.WizardRecord{
		State: calculator.State{
			Step:              calculator.StepResults,
			SelectedServiceID: "implant",
			Quantity:          2,
			MaterialTier:      calculator.MaterialStandard,
		},
		Locale: "en",
	}
}

func TestWizardHandler_Start(t *testing.T) {
	f := newWizardFixture(t)

	var saved redisstore.WizardRecord
	f.store.EXPECT().SaveWizard(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, rec redisstore.WizardRecord) error {
			saved = rec
			return nil
		})

	w := postJSON(f.router, "/v1/wizard", `{"locale":"de"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	resp := decodeWizard(t, w)
	if resp.ID == "" || resp.Locale != "de" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.State != calculator.InitialState() || resp.CanAdvance || resp.CanRetreat {
		t.Fatalf("unexpected state %+v", resp)
	}
	if len(resp.Services) != 2 {
		t.Fatalf("expected 2 services, got %d", len(resp.Services))
	}
	if saved.State != calculator.InitialState() || saved.UpdatedAt.IsZero() {
		t.Fatalf("unexpected saved record %+v", saved)
	}
}

func TestWizardHandler_StartWithoutBody(t *testing.T) {
	f := newWizardFixture(t)
	f.store.EXPECT().SaveWizard(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/wizard", nil)
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en;q=0.5")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if resp := decodeWizard(t, w); resp.Locale != "ru" {
		t.Fatalf("locale = %q, want ru", resp.Locale)
	}
}

func TestWizardHandler_NotFound(t *testing.T) {
	f := newWizardFixture(t)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/wizard/not-a-uuid", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	f.store.EXPECT().GetWizard(gomock.Any(), wizardID).Return(redisstore.WizardRecord{}, false, nil)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/wizard/"+wizardID, nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestWizardHandler_Dispatch(t *testing.T) {
	f := newWizardFixture(t)

	f.store.EXPECT().GetWizard(gomock.Any(), wizardID).
		Return(redisstore.WizardRecord{State: calculator.InitialState(), Locale: "en"}, true, nil)
	f.store.EXPECT().SaveWizard(gomock.Any(), wizardID, gomock.Any()).Return(nil)

	w := postJSON(f.router, "/v1/wizard/"+wizardID+"/actions", `{"type":"select_service","service_id":"implant"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	resp := decodeWizard(t, w)
	if resp.State.SelectedServiceID != "implant" || !resp.CanAdvance || !resp.RequiresMaterial {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Estimate != nil {
		t.Fatal("estimate must only be shown on the results step")
	}
}

func TestWizardHandler_DispatchInvalidTransition(t *testing.T) {
	f := newWizardFixture(t)

	f.store.EXPECT().GetWizard(gomock.Any(), wizardID).
		Return(redisstore.WizardRecord{State: calculator.InitialState(), Locale: "en"}, true, nil)
	f.store.EXPECT().SaveWizard(gomock.Any(), wizardID, gomock.Any()).Return(nil)

	w := postJSON(f.router, "/v1/wizard/"+wizardID+"/actions", `{"type":"advance"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp := decodeWizard(t, w); resp.State != calculator.InitialState() {
		t.Fatalf("state changed: %+v", resp.State)
	}
}

func TestWizardHandler_GetResults(t *testing.T) {
	f := newWizardFixture(t)
	f.store.EXPECT().GetWizard(gomock.Any(), wizardID).Return(resultsRecord(), true, nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/wizard/"+wizardID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	resp := decodeWizard(t, w)
	if resp.Estimate == nil {
		t.Fatal("expected estimate on results step")
	}
	if resp.Estimate.MinTotal != 4000 || resp.Estimate.MaxTotal != 5500 {
		t.Fatalf("estimate = %+v", resp.Estimate)
	}
	if resp.Estimate.Formatted != "4,000 – 5,500 EUR" {
		t.Fatalf("formatted = %q", resp.Estimate.Formatted)
	}
}

func TestWizardHandler_Submit(t *testing.T) {
	f := newWizardFixture(t)

	gomock.InOrder(
		f.store.EXPECT().GetWizard(gomock.Any(), wizardID).Return(resultsRecord(), true, nil),
		f.store.EXPECT().AcquireSubmitLock(gomock.Any(), wizardID).Return(true, nil),
		f.forms.EXPECT().SubmitEstimate(gomock.Any(), "192.0.2.1", forms.EstimateRequest{
			Name:         "Anna Schmidt",
			Phone:        "+49 30 1234567",
			Service:      "Dental implant",
			ServiceSlug:  "implant",
			Quantity:     2,
			MaterialType: "standard",
			PriceMin:     4000,
			PriceMax:     5500,
			Locale:       "en",
		}).Return(forms.Lead{ID: "lead-1"}, nil),
		f.store.EXPECT().GetWizard(gomock.Any(), wizardID).Return(resultsRecord(), true, nil),
		f.store.EXPECT().SaveWizard(gomock.Any(), wizardID, gomock.Any()).Return(nil),
		f.store.EXPECT().ReleaseSubmitLock(gomock.Any(), wizardID).Return(nil),
	)

	w := postJSON(f.router, "/v1/wizard/"+wizardID+"/submit", `{"name":"Anna Schmidt","phone":"+49 30 1234567"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestWizardHandler_SubmitInvalidContact(t *testing.T) {
	f := newWizardFixture(t)

	var saved redisstore.WizardRecord
	f.store.EXPECT().GetWizard(gomock.Any(), wizardID).Return(resultsRecord(), true, nil).Times(2)
	f.store.EXPECT().AcquireSubmitLock(gomock.Any(), wizardID).Return(true, nil)
	f.store.EXPECT().SaveWizard(gomock.Any(), wizardID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, rec redisstore.WizardRecord) error {
			saved = rec
			return nil
		})
	f.store.EXPECT().ReleaseSubmitLock(gomock.Any(), wizardID).Return(nil)
	// no SubmitEstimate expectation: the sink must not be called

	w := postJSON(f.router, "/v1/wizard/"+wizardID+"/submit", `{"name":"A","phone":"+49 30 1234567"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Errors["name"] == "" {
		t.Fatalf("expected name error, got %s", w.Body.String())
	}
	if saved.Contact.Phone != "+49 30 1234567" {
		t.Fatalf("contact not kept: %+v", saved.Contact)
	}
}

func TestWizardHandler_SubmitInFlight(t *testing.T) {
	f := newWizardFixture(t)

	f.store.EXPECT().GetWizard(gomock.Any(), wizardID).Return(resultsRecord(), true, nil)
	f.store.EXPECT().AcquireSubmitLock(gomock.Any(), wizardID).Return(false, nil)

	w := postJSON(f.router, "/v1/wizard/"+wizardID+"/submit", `{"name":"Anna","phone":"+49 30 1234567"}`, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestWizardHandler_SubmitNotReady(t *testing.T) {
	f := newWizardFixture(t)

	rec := resultsRecord()
	rec.State.Step = calculator.StepOptionSelection
	f.store.EXPECT().GetWizard(gomock.Any(), wizardID).Return(rec, true, nil).Times(2)
	f.store.EXPECT().AcquireSubmitLock(gomock.Any(), wizardID).Return(true, nil)
	f.store.EXPECT().SaveWizard(gomock.Any(), wizardID, gomock.Any()).Return(nil)
	f.store.EXPECT().ReleaseSubmitLock(gomock.Any(), wizardID).Return(nil)

	w := postJSON(f.router, "/v1/wizard/"+wizardID+"/submit", `{"name":"Anna","phone":"+49 30 1234567"}`, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestWizardHandler_Delete(t *testing.T) {
	f := newWizardFixture(t)
	f.store.EXPECT().DropWizard(gomock.Any(), wizardID).Return(nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/wizard/"+wizardID, nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}
