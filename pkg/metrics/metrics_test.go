package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.RunsTotal == nil {
		t.Error("RunsTotal not initialized")
	}
	if r.PassDuration == nil {
		t.Error("PassDuration not initialized")
	}
	if r.GraphNodes == nil {
		t.Error("GraphNodes not initialized")
	}
	if r.UptimeSeconds == nil || r.GCCycles == nil {
		t.Error("system gauges not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestRunLifecycle(t *testing.T) {
	r := NewRegistry()

	r.RunStarted(10, 12)
	if got := gaugeValue(t, r.RunsInFlight); got != 1 {
		t.Errorf("RunsInFlight = %v, want 1", got)
	}
	if got := gaugeValue(t, r.GraphNodes); got != 10 {
		t.Errorf("GraphNodes = %v, want 10", got)
	}
	if got := gaugeValue(t, r.LastRunProgressMax); got != 10 {
		t.Errorf("LastRunProgressMax = %v, want 10", got)
	}

	for i := 0; i < 4; i++ {
		r.RecordSource()
	}
	if got := counterValue(t, r.SourcesProcessed); got != 4 {
		t.Errorf("SourcesProcessed = %v, want 4", got)
	}
	if got := gaugeValue(t, r.LastRunProgress); got != 4 {
		t.Errorf("LastRunProgress = %v, want 4", got)
	}

	r.RecordRun("undirected+paired", OutcomeCancelled, 50*time.Millisecond)
	if got := gaugeValue(t, r.RunsInFlight); got != 0 {
		t.Errorf("RunsInFlight = %v, want 0", got)
	}

	counter, err := r.RunsTotal.GetMetricWithLabelValues("undirected+paired", OutcomeCancelled)
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := counterValue(t, counter); got != 1 {
		t.Errorf("RunsTotal{cancelled} = %v, want 1", got)
	}
}

func TestRecordPass(t *testing.T) {
	r := NewRegistry()

	r.RecordPass("sweep", 10*time.Millisecond)
	r.RecordPass("sweep", 30*time.Millisecond)

	families, err := r.Gatherer().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "netanalyzer_pass_duration_seconds" {
			continue
		}
		h := mf.GetMetric()[0].GetHistogram()
		if h.GetSampleCount() != 2 {
			t.Errorf("sample count = %d, want 2", h.GetSampleCount())
		}
		if h.GetSampleSum() < 0.039 || h.GetSampleSum() > 0.041 {
			t.Errorf("sample sum = %v, want 0.04", h.GetSampleSum())
		}
		return
	}
	t.Error("pass duration histogram not gathered")
}

func TestRecordExport(t *testing.T) {
	r := NewRegistry()

	r.RecordExport("json", 128, nil)
	r.RecordExport("json", 0, errors.New("disk full"))

	ok, _ := r.ExportsTotal.GetMetricWithLabelValues("json", "success")
	failed, _ := r.ExportsTotal.GetMetricWithLabelValues("json", "error")
	bytes, _ := r.ExportBytes.GetMetricWithLabelValues("json")

	if got := counterValue(t, ok); got != 1 {
		t.Errorf("success exports = %v, want 1", got)
	}
	if got := counterValue(t, failed); got != 1 {
		t.Errorf("failed exports = %v, want 1", got)
	}
	if got := counterValue(t, bytes); got != 128 {
		t.Errorf("export bytes = %v, want 128", got)
	}
}

func TestUpdateSystemMetrics(t *testing.T) {
	r := NewRegistry()
	r.UpdateSystemMetrics(time.Now().Add(-time.Minute))

	if got := gaugeValue(t, r.UptimeSeconds); got < 60 {
		t.Errorf("UptimeSeconds = %v, want >= 60", got)
	}
	if got := gaugeValue(t, r.GoRoutines); got < 1 {
		t.Errorf("GoRoutines = %v, want >= 1", got)
	}
	if got := gaugeValue(t, r.MemoryAllocBytes); got <= 0 {
		t.Errorf("MemoryAllocBytes = %v, want > 0", got)
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.RecordRun("directed", OutcomeCompleted, time.Second)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `netanalyzer_runs_total{mode="directed",outcome="completed"} 1`) {
		t.Errorf("exposition missing run counter:\n%s", body)
	}
}

func TestRegistryIsolation(t *testing.T) {
	r1 := NewRegistry()
	r2 := NewRegistry()

	r1.RecordSource()
	if got := counterValue(t, r2.SourcesProcessed); got != 0 {
		t.Errorf("registries should not share metrics, got %v", got)
	}
}
