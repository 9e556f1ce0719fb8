package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lexdesk/whatsapp-intake/internal/http/handlers"
	httpmiddleware "github.com/lexdesk/whatsapp-intake/internal/http/middleware"
	"github.com/lexdesk/whatsapp-intake/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	Webhooks       *handlers.WhatsAppWebhookHandler
	MetricsHandler http.Handler
	EnableTestLead bool
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/", cfg.Webhooks.Home)
	r.Get("/health", cfg.Webhooks.HealthCheck)
	r.Get("/webhook", cfg.Webhooks.Verify)
	r.Post("/webhook", cfg.Webhooks.Receive)

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}
	if cfg.EnableTestLead {
		r.Get("/test/lead", cfg.Webhooks.TestCreateLead)
	}

	return r
}
