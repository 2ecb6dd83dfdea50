package metrics

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run outcomes used as the "outcome" label of RunsTotal.
const (
	OutcomeCompleted = "completed"
	OutcomeCancelled = "cancelled"
	OutcomeFailed    = "failed"
)

// RunStarted records the start of a run over a graph of the given size
func (r *Registry) RunStarted(nodes, edges int) {
	r.RunsInFlight.Inc()
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
	r.LastRunProgress.Set(0)
	r.LastRunProgressMax.Set(float64(nodes))
}

// RecordRun records a finished analysis run
func (r *Registry) RecordRun(mode, outcome string, duration time.Duration) {
	r.RunsInFlight.Dec()
	r.RunsTotal.WithLabelValues(mode, outcome).Inc()
	r.RunDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordPass records the duration of one analysis pass
func (r *Registry) RecordPass(pass string, duration time.Duration) {
	r.PassDuration.WithLabelValues(pass).Observe(duration.Seconds())
}

// RecordSource records one completed shortest path source traversal
func (r *Registry) RecordSource() {
	r.SourcesProcessed.Inc()
	r.LastRunProgress.Inc()
}

// RecordGraphBuild records how long the adjacency snapshot took to build
func (r *Registry) RecordGraphBuild(duration time.Duration) {
	r.GraphBuildDur.Observe(duration.Seconds())
}

// RecordExport records one export attempt
func (r *Registry) RecordExport(format string, bytes int64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.ExportsTotal.WithLabelValues(format, status).Inc()
	if bytes > 0 {
		r.ExportBytes.WithLabelValues(format).Add(float64(bytes))
	}
}

// UpdateSystemMetrics refreshes uptime and Go runtime gauges
func (r *Registry) UpdateSystemMetrics(start time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.UptimeSeconds.Set(time.Since(start).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
	r.GCCycles.Set(float64(m.NumGC))
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
