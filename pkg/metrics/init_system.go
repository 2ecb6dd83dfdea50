package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSystemMetrics() {
	gauge := func(name, help string) prometheus.Gauge {
		return promauto.With(r.registry).NewGauge(prometheus.GaugeOpts{
			Name: "netanalyzer_" + name,
			Help: help,
		})
	}

	r.UptimeSeconds = gauge("uptime_seconds", "Seconds since the analyzer process started")
	r.GoRoutines = gauge("goroutines", "Goroutines alive, sweep workers included")
	r.MemoryAllocBytes = gauge("memory_alloc_bytes", "Heap bytes currently allocated")
	r.MemorySysBytes = gauge("memory_sys_bytes", "Bytes obtained from the OS")
	r.GCCycles = gauge("gc_cycles", "Completed garbage collection cycles")
}
