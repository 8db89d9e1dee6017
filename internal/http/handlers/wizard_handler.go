package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/currency"

	"dentalsite/internal/calculator"
	"dentalsite/internal/forms"
	request "dentalsite/internal/http/dto/request"
	response "dentalsite/internal/http/dto/response"
	redisstore "dentalsite/internal/storage/redis"
)

// WizardHandler runs calculator sessions for the web page. The session
// state lives in the WizardStore between requests.
type WizardHandler struct {
	catalog       CatalogLoader
	resolver      *calculator.Resolver
	store         WizardStore
	forms         FormSubmitter
	currency      currency.Unit
	defaultLocale string
	logger        *zap.Logger
	now           func() time.Time
}

type WizardHandlerConfig struct {
	Catalog       CatalogLoader
	Resolver      *calculator.Resolver
	Store         WizardStore
	Forms         FormSubmitter
	Currency      currency.Unit
	DefaultLocale string
	Logger        *zap.Logger
}

func NewWizardHandler(cfg WizardHandlerConfig) *WizardHandler {
	return &WizardHandler{
		catalog:       cfg.Catalog,
		resolver:      cfg.Resolver,
		store:         cfg.Store,
		forms:         cfg.Forms,
		currency:      cfg.Currency,
		defaultLocale: cfg.DefaultLocale,
		logger:        cfg.Logger,
		now:           time.Now,
	}
}

func (h *WizardHandler) Start(c *gin.Context) {
	var payload request.StartWizardRequest
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, errInvalidPayload)
		return
	}

	id := uuid.NewString()
	rec := redisstore.WizardRecord{
		State:  calculator.InitialState(),
		Locale: resolveLocale(c, payload.Locale, h.defaultLocale),
	}

	ctx := c.Request.Context()
	ctrl := h.controller(ctx, rec.Locale)
	if err := h.save(ctx, id, &rec); err != nil {
		h.logger.Error("Failed to save wizard", zap.String("session_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errInternal)
		return
	}

	c.JSON(http.StatusCreated, h.view(id, rec, ctrl))
}

func (h *WizardHandler) Get(c *gin.Context) {
	id := c.Param("id")
	rec, ok := h.load(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.view(id, rec, h.controller(c.Request.Context(), rec.Locale)))
}

// Dispatch applies one action. Invalid transitions are not errors: the
// unchanged state is returned.
func (h *WizardHandler) Dispatch(c *gin.Context) {
	var payload request.WizardActionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, errInvalidPayload)
		return
	}

	id := c.Param("id")
	rec, ok := h.load(c, id)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	ctrl := h.controller(ctx, rec.Locale)
	rec.State = ctrl.Reduce(rec.State, payload.Action())
	rec.Revision++

	if err := h.save(ctx, id, &rec); err != nil {
		h.logger.Error("Failed to save wizard", zap.String("session_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errInternal)
		return
	}

	c.JSON(http.StatusOK, h.view(id, rec, ctrl))
}

func (h *WizardHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DropWizard(c.Request.Context(), id); err != nil {
		h.logger.Error("Failed to drop wizard", zap.String("session_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errInternal)
		return
	}
	c.Status(http.StatusNoContent)
}

// Submit sends the finished estimate with the visitor's contact details.
// Only one submission per wizard may run at a time, across all replicas.
func (h *WizardHandler) Submit(c *gin.Context) {
	var payload request.WizardSubmitRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, errInvalidPayload)
		return
	}

	id := c.Param("id")
	rec, ok := h.load(c, id)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	locked, err := h.store.AcquireSubmitLock(ctx, id)
	if err != nil {
		h.logger.Error("Failed to lock wizard", zap.String("session_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errInternal)
		return
	}
	if !locked {
		writeError(c, calculator.ErrSubmissionInFlight)
		return
	}
	defer func() {
		if err := h.store.ReleaseSubmitLock(context.WithoutCancel(ctx), id); err != nil {
			h.logger.Warn("Failed to release wizard lock", zap.String("session_id", id), zap.Error(err))
		}
	}()

	sink := forms.ClientSink{Submitter: h.forms, ClientID: c.ClientIP()}
	session := calculator.RestoreSession(h.controller(ctx, rec.Locale), sink, rec.Locale, rec.State)
	defer session.Close()

	submitErr := session.Submit(ctx, payload.Contact())
	h.keepContact(context.WithoutCancel(ctx), id, rec.Revision, session.Contact())

	if submitErr != nil {
		h.logger.Info("Wizard submission failed",
			zap.String("session_id", id),
			zap.Error(submitErr))
		writeError(c, submitErr)
		return
	}

	h.logger.Info("Wizard submitted", zap.String("session_id", id))
	c.JSON(http.StatusCreated, response.WizardSubmitResponse{Status: string(calculator.SubmissionSucceeded)})
}

// keepContact stores the entered contact so a failed attempt can be
// retried. The result is dropped when the wizard was deleted or changed
// while the submission was pending.
func (h *WizardHandler) keepContact(ctx context.Context, id string, revision uint64, contact calculator.Contact) {
	latest, found, err := h.store.GetWizard(ctx, id)
	if err != nil {
		h.logger.Warn("Failed to reload wizard", zap.String("session_id", id), zap.Error(err))
		return
	}
	if !found || latest.Revision != revision {
		h.logger.Info("Wizard changed during submission, dropping result",
			zap.String("session_id", id),
			zap.Bool("found", found))
		return
	}

	latest.Contact = contact
	if err := h.save(ctx, id, &latest); err != nil {
		h.logger.Warn("Failed to save wizard contact", zap.String("session_id", id), zap.Error(err))
	}
}

func (h *WizardHandler) load(c *gin.Context, id string) (redisstore.WizardRecord, bool) {
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, errWizardNotFound)
		return redisstore.WizardRecord{}, false
	}

	rec, found, err := h.store.GetWizard(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load wizard", zap.String("session_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errInternal)
		return redisstore.WizardRecord{}, false
	}
	if !found {
		c.JSON(http.StatusNotFound, errWizardNotFound)
		return redisstore.WizardRecord{}, false
	}
	if rec.State.Step == "" {
		rec.State = calculator.InitialState()
	}
	rec.State.Quantity = calculator.ClampQuantity(rec.State.Quantity)
	return rec, true
}

func (h *WizardHandler) save(ctx context.Context, id string, rec *redisstore.WizardRecord) error {
	rec.UpdatedAt = h.now().UTC()
	return h.store.SaveWizard(ctx, id, *rec)
}

func (h *WizardHandler) controller(ctx context.Context, locale string) *calculator.Controller {
	return calculator.NewController(h.catalog.Load(ctx, locale), h.resolver)
}

func (h *WizardHandler) view(id string, rec redisstore.WizardRecord, ctrl *calculator.Controller) response.WizardResponse {
	resp := response.WizardResponse{
		ID:               id,
		Locale:           rec.Locale,
		State:            rec.State,
		Services:         ctrl.Services(),
		CanAdvance:       ctrl.CanAdvance(rec.State),
		CanRetreat:       ctrl.CanRetreat(rec.State),
		RequiresMaterial: ctrl.RequiresMaterial(rec.State.SelectedServiceID),
	}
	if estimate, ok := ctrl.Estimate(rec.State); ok && rec.State.Step == calculator.StepResults {
		resp.Estimate = &response.EstimateResponse{
			MinTotal:  estimate.MinTotal,
			MaxTotal:  estimate.MaxTotal,
			Formatted: calculator.FormatRange(estimate, rec.Locale, h.currency),
		}
	}
	if rec.Contact != (calculator.Contact{}) {
		contact := rec.Contact
		resp.Contact = &contact
	}
	return resp
}
