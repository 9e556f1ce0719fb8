package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestIntakeMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewIntakeMetrics(reg)
	m.ObserveInbound("processed")
	m.ObserveCRMCall("create_lead", "ok")
	m.ObservePipelineLatency("processed", 0.25)
}

func TestIntakeMetricsNilSafe(t *testing.T) {
	var m *IntakeMetrics
	m.ObserveInbound("ignored")
	m.ObserveCRMCall("create_task", "auth_failed")
	m.ObservePipelineLatency("ignored", 0.1)
}
