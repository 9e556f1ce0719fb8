package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lexdesk/whatsapp-intake/internal/crm/zohoclient"
	"github.com/lexdesk/whatsapp-intake/internal/intake"
	"github.com/lexdesk/whatsapp-intake/pkg/logging"
)

const rejectVerifyBody = "Invalid verify token"

type pipelineRunner interface {
	Process(ctx context.Context, env *intake.Envelope) intake.Result
}

type leadCreator interface {
	CreateLead(ctx context.Context, lead zohoclient.LeadRecord) json.RawMessage
}

// WhatsAppWebhookHandler serves the WhatsApp subscription handshake and
// inbound message deliveries.
type WhatsAppWebhookHandler struct {
	pipeline    pipelineRunner
	crm         leadCreator
	verifyToken string
	logger      *logging.Logger
}

type WhatsAppWebhookConfig struct {
	Pipeline    pipelineRunner
	CRM         leadCreator
	VerifyToken string
	Logger      *logging.Logger
}

func NewWhatsAppWebhookHandler(cfg WhatsAppWebhookConfig) *WhatsAppWebhookHandler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &WhatsAppWebhookHandler{
		pipeline:    cfg.Pipeline,
		crm:         cfg.CRM,
		verifyToken: cfg.VerifyToken,
		logger:      cfg.Logger,
	}
}

// Verify handles the GET subscription handshake. The platform expects the
// challenge echoed back as plain text, and a literal rejection string on
// token mismatch rather than a JSON error.
func (h *WhatsAppWebhookHandler) Verify(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if h.verifyToken != "" && params.Get("hub.verify_token") == h.verifyToken {
		w.Write([]byte(params.Get("hub.challenge")))
		return
	}
	h.logger.Warn("webhook verification rejected")
	w.Write([]byte(rejectVerifyBody))
}

// Receive handles POST message deliveries. Undecodable or irrelevant bodies
// are acknowledged as ignored; the platform must never see an error for an
// event shape this service does not process.
func (h *WhatsAppWebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var env intake.Envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		h.logger.Debug("undecodable webhook body", "error", err)
		writeJSON(w, intake.Result{Status: intake.StatusIgnored})
		return
	}

	result := h.pipeline.Process(r.Context(), &env)
	writeJSON(w, result)
}

// Home reports that the automation is live.
func (h *WhatsAppWebhookHandler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"message": "WhatsApp → Zoho CRM automation active"})
}

// HealthCheck returns a liveness response.
func (h *WhatsAppWebhookHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// TestCreateLead issues a canned lead write and returns the raw CRM payload.
// Useful for verifying Zoho credentials without a live WhatsApp subscription.
func (h *WhatsAppWebhookHandler) TestCreateLead(w http.ResponseWriter, r *http.Request) {
	if h.crm == nil {
		http.Error(w, "crm client not configured", http.StatusServiceUnavailable)
		return
	}
	result := h.crm.CreateLead(r.Context(), zohoclient.LeadRecord{
		LastName:    "Test User",
		Phone:       "919999999999",
		Description: "Example WhatsApp message",
		MatterType:  "Drafting",
		Urgency:     "High",
	})
	w.Header().Set("Content-Type", "application/json")
	w.Write(result)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
