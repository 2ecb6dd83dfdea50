package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the analyzer. Each Registry owns its own
// prometheus registry so tests and concurrent runs never collide.
type Registry struct {
	// Analysis run metrics
	RunsTotal          *prometheus.CounterVec
	RunDuration        *prometheus.HistogramVec
	RunsInFlight       prometheus.Gauge
	PassDuration       *prometheus.HistogramVec
	SourcesProcessed   prometheus.Counter
	LastRunProgress    prometheus.Gauge
	LastRunProgressMax prometheus.Gauge

	// Graph metrics (last analyzed network)
	GraphNodes    prometheus.Gauge
	GraphEdges    prometheus.Gauge
	GraphBuildDur prometheus.Histogram

	// Export metrics
	ExportsTotal *prometheus.CounterVec
	ExportBytes  *prometheus.CounterVec

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge
	GCCycles         prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.RWMutex
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initAnalysisMetrics()
	r.initGraphMetrics()
	r.initSystemMetrics()

	return r
}

// Gatherer exposes the underlying registry for tests and custom exporters.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
