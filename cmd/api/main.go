package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	openai "github.com/sashabaranov/go-openai"

	"github.com/lexdesk/whatsapp-intake/internal/api/router"
	appconfig "github.com/lexdesk/whatsapp-intake/internal/config"
	"github.com/lexdesk/whatsapp-intake/internal/crm/zohoclient"
	"github.com/lexdesk/whatsapp-intake/internal/http/handlers"
	"github.com/lexdesk/whatsapp-intake/internal/intake"
	observemetrics "github.com/lexdesk/whatsapp-intake/internal/observability/metrics"
	"github.com/lexdesk/whatsapp-intake/internal/summarize"
	"github.com/lexdesk/whatsapp-intake/pkg/logging"
)

func main() {
	// .env is optional; real deployments provide the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting whatsapp-intake API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	zoho, err := zohoclient.New(zohoclient.Config{
		AccountsURL:  cfg.ZohoAccountsURL,
		BaseURL:      cfg.ZohoBaseURL,
		ClientID:     cfg.ZohoClientID,
		ClientSecret: cfg.ZohoClientSecret,
		RefreshToken: cfg.ZohoRefreshToken,
		Timeout:      cfg.ZohoTimeout,
		TokenTTL:     cfg.ZohoTokenTTL,
		Logger:       logger.Logger,
	})
	if err != nil {
		logger.Error("failed to configure zoho client", "error", err)
		os.Exit(1)
	}

	var summarizer *summarize.Service
	if cfg.OpenAIAPIKey != "" {
		summarizer = summarize.NewService(openai.NewClient(cfg.OpenAIAPIKey), cfg.OpenAIModel, cfg.OpenAITimeout, logger)
	} else {
		logger.Warn("OPENAI_API_KEY not set, summaries fall back to truncation")
		summarizer = summarize.NewService(nil, cfg.OpenAIModel, cfg.OpenAITimeout, logger)
	}

	intakeMetrics := observemetrics.NewIntakeMetrics(nil)
	pipeline := intake.NewPipeline(intake.PipelineConfig{
		CRM:        zoho,
		Summarizer: summarizer,
		Logger:     logger,
		Metrics:    intakeMetrics,
	})

	webhooks := handlers.NewWhatsAppWebhookHandler(handlers.WhatsAppWebhookConfig{
		Pipeline:    pipeline,
		CRM:         zoho,
		VerifyToken: cfg.VerifyToken,
		Logger:      logger,
	})

	r := router.New(&router.Config{
		Logger:         logger,
		Webhooks:       webhooks,
		MetricsHandler: promhttp.Handler(),
		EnableTestLead: cfg.EnableTestRoutes,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
