package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnalysisMetrics() {
	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netanalyzer_runs_total",
			Help: "Total number of finished analysis runs",
		},
		[]string{"mode", "outcome"},
	)

	r.RunDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netanalyzer_run_duration_seconds",
			Help:    "Analysis run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
		[]string{"mode"},
	)

	r.RunsInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netanalyzer_runs_in_flight",
			Help: "Number of analysis runs currently executing",
		},
	)

	r.PassDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netanalyzer_pass_duration_seconds",
			Help:    "Duration of individual analysis passes in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
		[]string{"pass"},
	)

	r.SourcesProcessed = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "netanalyzer_sources_processed_total",
			Help: "Total number of shortest path source traversals completed",
		},
	)

	r.LastRunProgress = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netanalyzer_last_run_progress",
			Help: "Progress counter of the most recently started run",
		},
	)

	r.LastRunProgressMax = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netanalyzer_last_run_progress_max",
			Help: "Progress maximum of the most recently started run",
		},
	)

	r.ExportsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netanalyzer_exports_total",
			Help: "Total number of result exports",
		},
		[]string{"format", "status"},
	)

	r.ExportBytes = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netanalyzer_export_bytes_total",
			Help: "Bytes written by result exports",
		},
		[]string{"format"},
	)
}
