package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Visualize outcomes, one per request.
const (
	OutcomeFastPath      = "fast_path"
	OutcomeStoreHit      = "store_hit"
	OutcomeAI            = "ai"
	OutcomeMerged        = "merged"
	OutcomeFallback      = "fallback"
	OutcomeMissingConfig = "missing_config"
	OutcomeUnauthorized  = "unauthorized"
	OutcomeTimeout       = "timeout"
	OutcomeUpstreamError = "upstream_error"
	OutcomeInvalid       = "invalid"
)

var (
	global *Metrics
	once   sync.Once
)

// Metrics holds the Prometheus collectors for the API.
//
//   - visualize_requests_total{outcome}
//   - visualize_upstream_duration_seconds
//   - rate_limited_requests_total{bucket}
type Metrics struct {
	VisualizeOutcomes *prometheus.CounterVec
	UpstreamDuration  prometheus.Histogram
	RateLimited       *prometheus.CounterVec
}

// Get registers the collectors on first use with the default registry.
func Get() *Metrics {
	once.Do(func() {
		global = &Metrics{
			VisualizeOutcomes: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "visualize_requests_total",
					Help: "Visualize requests by how they were answered",
				},
				[]string{"outcome"},
			),
			UpstreamDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "visualize_upstream_duration_seconds",
				Help:    "Latency of calls to the AI visualize function",
				Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30},
			}),
			RateLimited: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "rate_limited_requests_total",
					Help: "Requests rejected by the rate limiter",
				},
				[]string{"bucket"},
			),
		}
	})
	return global
}

func (m *Metrics) Visualize(outcome string) {
	m.VisualizeOutcomes.WithLabelValues(outcome).Inc()
}
