package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// solar sampler and the query API.
type Metrics struct {
	ComputeTotal    prometheus.Counter
	ComputeDuration prometheus.Histogram
	SamplerRunning  prometheus.Gauge

	SamplesPublished prometheus.Counter
	PublishErrors    prometheus.Counter

	// PolarEvents counts samples where the site had no sunrise/sunset
	// (polar day or night) on the sampled day.
	PolarEvents prometheus.Counter

	// Query API metrics.
	PositionRequests prometheus.Counter
	EventsCache      *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ComputeTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "solar",
			Name:      "compute_total",
			Help:      "Total solar position computations.",
		}),
		ComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "solar",
			Name:      "compute_duration_seconds",
			Help:      "Duration of one full position computation.",
			Buckets:   []float64{1e-7, 5e-7, 1e-6, 5e-6, 1e-5, 1e-4, 1e-3},
		}),
		SamplerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "solar",
			Name:      "sampler_running",
			Help:      "1 when the sampler loop is active, 0 when shut down.",
		}),
		SamplesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "solar",
			Name:      "samples_published_total",
			Help:      "Total reports written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "solar",
			Name:      "publish_errors_total",
			Help:      "Total failed report publishes.",
		}),
		PolarEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "solar",
			Name:      "polar_events_total",
			Help:      "Samples with no sunrise or sunset on the sampled day.",
		}),
		PositionRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "solar",
			Name:      "position_requests_total",
			Help:      "Position queries served over HTTP.",
		}),
		EventsCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "solar",
			Name:      "events_cache_total",
			Help:      "Daily-events cache lookups by result.",
		}, []string{"result"}),
	}

	prometheus.MustRegister(
		m.ComputeTotal,
		m.ComputeDuration,
		m.SamplerRunning,
		m.SamplesPublished,
		m.PublishErrors,
		m.PolarEvents,
		m.PositionRequests,
		m.EventsCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ComputeTotal:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "solar", Name: "compute_total"}),
		ComputeDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "solar", Name: "compute_duration_seconds"}),
		SamplerRunning:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "solar", Name: "sampler_running"}),
		SamplesPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "solar", Name: "samples_published_total"}),
		PublishErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "solar", Name: "publish_errors_total"}),
		PolarEvents:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "solar", Name: "polar_events_total"}),
		PositionRequests: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "solar", Name: "position_requests_total"}),
		EventsCache:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "solar", Name: "events_cache_total"}, []string{"result"}),
	}
}
