package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Discovery Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stayfinder",
			Name:      "searches_total",
			Help:      "Total number of discovery searches",
		},
		[]string{"mode", "outcome"},
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stayfinder",
			Name:      "search_results",
			Help:      "Number of listings returned per successful search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
		[]string{"mode"},
	)

	StoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stayfinder",
			Name:      "store_duration_seconds",
			Help:      "Listing store call duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"op", "status"},
	)
)

var discoveryMetricsRegistered bool

// RegisterDiscoveryMetrics registers discovery metrics. Must be called once from main.
func RegisterDiscoveryMetrics() {
	if discoveryMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(StoreDuration)
	discoveryMetricsRegistered = true
}

// Recorder feeds discovery telemetry into the package-level collectors.
type Recorder struct{}

// SearchCompleted records one search outcome. results is ignored unless outcome is "ok".
func (Recorder) SearchCompleted(mode, outcome string, results int) {
	SearchesTotal.WithLabelValues(mode, outcome).Inc()
	if outcome == "ok" {
		SearchResults.WithLabelValues(mode).Observe(float64(results))
	}
}

// StoreCall records the latency of one listing store call.
func (Recorder) StoreCall(op string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	StoreDuration.WithLabelValues(op, status).Observe(d.Seconds())
}
