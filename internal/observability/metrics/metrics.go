package metrics

import "github.com/prometheus/client_golang/prometheus"

// IntakeMetrics exposes counters/histograms for the webhook intake pipeline.
type IntakeMetrics struct {
	inboundTotal    *prometheus.CounterVec
	crmCallTotal    *prometheus.CounterVec
	pipelineLatency *prometheus.HistogramVec
}

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		inboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lexdesk",
			Subsystem: "intake",
			Name:      "inbound_webhook_total",
			Help:      "Total inbound WhatsApp webhooks by outcome",
		}, []string{"outcome"}),
		crmCallTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lexdesk",
			Subsystem: "intake",
			Name:      "crm_call_total",
			Help:      "Total Zoho CRM write attempts",
		}, []string{"operation", "status"}),
		pipelineLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lexdesk",
			Subsystem: "intake",
			Name:      "pipeline_latency_seconds",
			Help:      "Latency of the message-to-record pipeline",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.inboundTotal, m.crmCallTotal, m.pipelineLatency)
	return m
}

func (m *IntakeMetrics) ObserveInbound(outcome string) {
	if m == nil {
		return
	}
	m.inboundTotal.WithLabelValues(outcome).Inc()
}

func (m *IntakeMetrics) ObserveCRMCall(operation, status string) {
	if m == nil {
		return
	}
	m.crmCallTotal.WithLabelValues(operation, status).Inc()
}

func (m *IntakeMetrics) ObservePipelineLatency(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.pipelineLatency.WithLabelValues(outcome).Observe(seconds)
}
