package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dentalsite/internal/http/handlers"
)

const (
	PathServices = "/services"
	PathQuote    = "/quote"
	PathWizard   = "/wizard"
	PathForms    = "/forms"
)

// HealthChecker reports whether a backing service is reachable.
type HealthChecker func(ctx context.Context) error

type Dependencies struct {
	Catalog        *handlers.CatalogHandler
	Quote          *handlers.QuoteHandler
	Wizard         *handlers.WizardHandler
	Forms          *handlers.FormsHandler
	Health         map[string]HealthChecker
	TrustedProxies []string
	RequestTimeout time.Duration
	Logger         *zap.Logger
}

// NewRouter wires all public routes. A nil wizard handler disables the
// wizard routes. Forwarded headers are only honoured from TrustedProxies.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(deps.TrustedProxies); err != nil {
		deps.Logger.Error("Invalid trusted proxies, ignoring forwarded headers",
			zap.Strings("trusted_proxies", deps.TrustedProxies),
			zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(recovery(deps.Logger))
	router.Use(requestLogger(deps.Logger))
	router.Use(requestTimeout(deps.RequestTimeout))

	router.GET("/healthz", healthHandler(deps.Health))

	v1 := router.Group("/v1")
	v1.GET(PathServices, deps.Catalog.ListServices)
	v1.GET(PathQuote, deps.Quote.Quote)

	if deps.Wizard != nil {
		wizard := v1.Group(PathWizard)
		{
			wizard.POST("", deps.Wizard.Start)
			wizard.GET("/:id", deps.Wizard.Get)
			wizard.DELETE("/:id", deps.Wizard.Delete)
			wizard.POST("/:id/actions", deps.Wizard.Dispatch)
			wizard.POST("/:id/submit", deps.Wizard.Submit)
		}
	}

	forms := v1.Group(PathForms)
	{
		forms.POST("/contact", deps.Forms.Contact)
		forms.POST("/callback", deps.Forms.Callback)
		forms.POST("/estimate", deps.Forms.Estimate)
	}

	return router
}

func healthHandler(checks map[string]HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		result := gin.H{}
		for name, check := range checks {
			if err := check(c.Request.Context()); err != nil {
				status = http.StatusServiceUnavailable
				result[name] = err.Error()
				continue
			}
			result[name] = "ok"
		}
		c.JSON(status, gin.H{"status": http.StatusText(status), "checks": result})
	}
}
