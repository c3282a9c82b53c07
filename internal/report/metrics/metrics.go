package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the reporting module.
type Metrics struct {
	// Cache outcomes by report kind
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	// Full report computation latency (cache misses only) by kind
	ComputeLatency *prometheus.HistogramVec
}

// New creates a new Metrics instance with all reporting metrics registered.
func New() *Metrics {
	return &Metrics{
		CacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pulse_report_cache_hits_total",
			Help: "Report cache hits by report kind",
		}, []string{"kind"}),

		CacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pulse_report_cache_misses_total",
			Help: "Report cache misses by report kind",
		}, []string{"kind"}),

		ComputeLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pulse_report_compute_duration_seconds",
			Help:    "Duration of report computations by kind",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"kind"}),
	}
}

// IncrementCacheHit records a cache hit for a report kind.
func (m *Metrics) IncrementCacheHit(kind string) {
	if m != nil {
		m.CacheHits.WithLabelValues(kind).Inc()
	}
}

// IncrementCacheMiss records a cache miss for a report kind.
func (m *Metrics) IncrementCacheMiss(kind string) {
	if m != nil {
		m.CacheMisses.WithLabelValues(kind).Inc()
	}
}

// ObserveCompute records the duration of a report computation.
func (m *Metrics) ObserveCompute(kind string, d time.Duration) {
	if m != nil {
		m.ComputeLatency.WithLabelValues(kind).Observe(d.Seconds())
	}
}
