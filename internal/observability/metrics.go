package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "paddlewise"

// Metrics holds the Prometheus collectors for the conditions pipeline.
type Metrics struct {
	// Upstream provider metrics.
	ProviderRequests *prometheus.CounterVec   // labels: provider, outcome={success,unavailable,quota,key_required,invalid}
	ProviderDuration *prometheus.HistogramVec // labels: provider

	// Cache metrics.
	CacheLookups *prometheus.CounterVec // labels: scope={session,long_lived}, result={hit,miss,error}
	LRUStats     *prometheus.GaugeVec   // labels: scope, stat={hits,misses,entries}

	// Orchestration metrics.
	Fallbacks         *prometheus.CounterVec // labels: category={marine,weather}
	ConditionsQueries *prometheus.CounterVec // labels: outcome={success,error}
	RiskCategory      prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ProviderRequests,
		m.ProviderDuration,
		m.CacheLookups,
		m.LRUStats,
		m.Fallbacks,
		m.ConditionsQueries,
		m.RiskCategory,
	)
	return m
}

// NewMetricsForTesting creates unregistered collectors so tests can build
// as many instances as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Upstream provider calls by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Upstream provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by scope and result.",
		}, []string{"scope", "result"}),
		LRUStats: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lru_stats",
			Help:      "Running hit and miss totals and current size of the in-memory LRU per scope.",
		}, []string{"scope", "stat"}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_total",
			Help:      "Categories served by a free fallback provider instead of the premium aggregator.",
		}, []string{"category"}),
		ConditionsQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conditions_queries_total",
			Help:      "Conditions lookups by outcome.",
		}, []string{"outcome"}),
		RiskCategory: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "risk_category",
			Help:      "Distribution of assessed risk categories.",
			Buckets:   []float64{1, 2, 3, 4, 5, 6},
		}),
	}
}
