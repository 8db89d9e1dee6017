package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"golang.org/x/text/currency"

	"dentalsite/internal/calculator"
	"dentalsite/internal/forms"
	"dentalsite/internal/http/handlers/mocks"
	redisstore "dentalsite/internal/storage/redis"
)

type memoryWizardStore struct {
	mu      sync.Mutex
	records map[string]redisstore.WizardRecord
	locks   map[string]bool
}

func newMemoryWizardStore() *memoryWizardStore {
	return &memoryWizardStore{
		records: map[string]redisstore.WizardRecord{},
		locks:   map[string]bool{},
	}
}

func (m *memoryWizardStore) GetWizard(_ context.Context, key string) (redisstore.WizardRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[key]
	return rec, ok, nil
}

func (m *memoryWizardStore) SaveWizard(_ context.Context, key string, rec redisstore.WizardRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = rec
	return nil
}

func (m *memoryWizardStore) DropWizard(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	delete(m.locks, key)
	return nil
}

func (m *memoryWizardStore) AcquireSubmitLock(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[key] {
		return false, nil
	}
	m.locks[key] = true
	return true, nil
}

func (m *memoryWizardStore) ReleaseSubmitLock(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, key)
	return nil
}

func (m *memoryWizardStore) record(key string) (redisstore.WizardRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[key]
	return rec, ok
}

func TestWizardHandler_SubmitDoesNotOverwriteLaterChanges(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		interrupt func(r http.Handler) int
		check     func(t *testing.T, rec redisstore.WizardRecord, found bool)
	}{
		{
			name: "no change keeps contact",
			check: func(t *testing.T, rec redisstore.WizardRecord, found bool) {
				if !found || rec.Contact.Name != "Anna Schmidt" || rec.State.Step != calculator.StepResults {
					t.Fatalf("unexpected record %+v (found=%v)", rec, found)
				}
			},
		},
		{
			name: "deleted while pending",
			interrupt: func(r http.Handler) int {
				w := httptest.NewRecorder()
				r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/wizard/"+wizardID, nil))
				return w.Code
			},
			check: func(t *testing.T, rec redisstore.WizardRecord, found bool) {
				if found {
					t.Fatalf("deleted wizard came back: %+v", rec)
				}
			},
		},
		{
			name: "reset while pending",
			interrupt: func(r http.Handler) int {
				return postJSON(r, "/v1/wizard/"+wizardID+"/actions", `{"type":"reset"}`, nil).Code
			},
			check: func(t *testing.T, rec redisstore.WizardRecord, found bool) {
				if !found || rec.State != calculator.InitialState() {
					t.Fatalf("reset was overwritten: %+v (found=%v)", rec, found)
				}
				if rec.Contact != (calculator.Contact{}) {
					t.Fatalf("abandoned submission wrote contact: %+v", rec.Contact)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			catalogLoader := mocks.NewMockCatalogLoader(ctrl)
			catalogLoader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(wizardServices).AnyTimes()
			submitter := mocks.NewMockFormSubmitter(ctrl)

			store := newMemoryWizardStore()
			store.records[wizardID] = resultsRecord()

			started := make(chan struct{})
			release := make(chan struct{})
			submitter.EXPECT().SubmitEstimate(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(context.Context, string, forms.EstimateRequest) (forms.Lead, error) {
					close(started)
					<-release
					return forms.Lead{ID: "lead-1"}, nil
				})

			h := NewWizardHandler(WizardHandlerConfig{
				Catalog:       catalogLoader,
				Resolver:      calculator.DefaultResolver(),
				Store:         store,
				Forms:         submitter,
				Currency:      currency.EUR,
				DefaultLocale: "en",
				Logger:        zap.NewNop(),
			})
			r := gin.New()
			r.DELETE("/v1/wizard/:id", h.Delete)
			r.POST("/v1/wizard/:id/actions", h.Dispatch)
			r.POST("/v1/wizard/:id/submit", h.Submit)

			done := make(chan int)
			go func() {
				w := postJSON(r, "/v1/wizard/"+wizardID+"/submit", `{"name":"Anna Schmidt","phone":"+49 30 1234567"}`, nil)
				done <- w.Code
			}()

			<-started
			if tt.interrupt != nil {
				if code := tt.interrupt(r); code >= 300 {
					t.Fatalf("interrupting request failed with %d", code)
				}
			}
			close(release)

			if code := <-done; code != http.StatusCreated {
				t.Fatalf("submit returned %d", code)
			}
			rec, found := store.record(wizardID)
			tt.check(t, rec, found)
		})
	}
}
