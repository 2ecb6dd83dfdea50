package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netanalyzer_graph_nodes",
			Help: "Number of nodes in the last analyzed network",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netanalyzer_graph_edges",
			Help: "Number of interpreted edges in the last analyzed network",
		},
	)

	r.GraphBuildDur = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netanalyzer_graph_build_duration_seconds",
			Help:    "Time spent building the adjacency snapshot in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)
}
