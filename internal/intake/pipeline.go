package intake

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lexdesk/whatsapp-intake/internal/classify"
	"github.com/lexdesk/whatsapp-intake/internal/crm/zohoclient"
	observemetrics "github.com/lexdesk/whatsapp-intake/internal/observability/metrics"
	"github.com/lexdesk/whatsapp-intake/pkg/logging"
)

// Terminal statuses and follow-up outcomes reported to the webhook caller.
const (
	StatusProcessed = "processed"
	StatusIgnored   = "ignored"

	FollowupTaskCreated = "Task Created"
	FollowupNotNeeded   = "No Task Needed"
)

type crmClient interface {
	CreateLead(ctx context.Context, lead zohoclient.LeadRecord) json.RawMessage
	CreateTask(ctx context.Context, leadID, summary string) json.RawMessage
}

type summarizer interface {
	Summarize(ctx context.Context, text string) string
}

// Result is the response body assembled for one inbound webhook event.
type Result struct {
	Status     string          `json:"status"`
	Summary    string          `json:"summary,omitempty"`
	Followup   string          `json:"followup,omitempty"`
	MatterType string          `json:"matter_type,omitempty"`
	Urgency    string          `json:"urgency,omitempty"`
	Lead       json.RawMessage `json:"lead,omitempty"`
}

// Pipeline turns one inbound WhatsApp event into CRM records: classify,
// upsert lead, summarize, and conditionally create a follow-up task. It is
// stateless and reentrant; every run responds, CRM-level failures included.
type Pipeline struct {
	crm        crmClient
	summarizer summarizer
	logger     *logging.Logger
	metrics    *observemetrics.IntakeMetrics
}

type PipelineConfig struct {
	CRM        crmClient
	Summarizer summarizer
	Logger     *logging.Logger
	Metrics    *observemetrics.IntakeMetrics
}

func NewPipeline(cfg PipelineConfig) *Pipeline {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &Pipeline{
		crm:        cfg.CRM,
		summarizer: cfg.Summarizer,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
	}
}

// Process runs the message-to-record pipeline for one delivery envelope.
func (p *Pipeline) Process(ctx context.Context, env *Envelope) Result {
	start := time.Now()

	msg, ok := env.FirstTextMessage()
	if !ok {
		p.logger.Debug("ignoring non-text or malformed webhook event")
		p.finish(StatusIgnored, start)
		return Result{Status: StatusIgnored}
	}

	p.logger.Info("whatsapp message received", "phone", msg.Phone)

	cls := classify.Classify(msg.Text)

	leadResult := p.crm.CreateLead(ctx, zohoclient.LeadRecord{
		LastName:    "WhatsApp_" + msg.Phone,
		Phone:       msg.Phone,
		Description: msg.Text,
		MatterType:  string(cls.MatterType),
		Urgency:     string(cls.Urgency),
	})

	leadID, hasLead := zohoclient.LeadIDFromResult(leadResult)
	if hasLead {
		p.metrics.ObserveCRMCall("create_lead", "ok")
	} else {
		p.metrics.ObserveCRMCall("create_lead", "no_id")
		p.logger.Warn("lead id missing from CRM response", "phone", msg.Phone)
	}

	summary := p.summarizer.Summarize(ctx, msg.Text)

	followup := FollowupNotNeeded
	if classify.NeedsFollowup(msg.Text) && hasLead {
		taskResult := p.crm.CreateTask(ctx, leadID, summary)
		if _, created := zohoclient.LeadIDFromResult(taskResult); created {
			p.metrics.ObserveCRMCall("create_task", "ok")
		} else {
			p.metrics.ObserveCRMCall("create_task", "no_id")
		}
		followup = FollowupTaskCreated
		p.logger.Info("follow-up task requested", "lead_id", leadID)
	}

	p.finish(StatusProcessed, start)
	return Result{
		Status:     StatusProcessed,
		Summary:    summary,
		Followup:   followup,
		MatterType: string(cls.MatterType),
		Urgency:    string(cls.Urgency),
		Lead:       leadResult,
	}
}

func (p *Pipeline) finish(outcome string, start time.Time) {
	p.metrics.ObserveInbound(outcome)
	p.metrics.ObservePipelineLatency(outcome, time.Since(start).Seconds())
}
