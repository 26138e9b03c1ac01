package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Query pipeline Prometheus metrics.
var (
	ModelRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peoplefinder",
			Name:      "model_requests_total",
			Help:      "Total number of filter-extraction model requests",
		},
		[]string{"model", "status"},
	)

	ModelRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "peoplefinder",
			Name:      "model_request_duration_seconds",
			Help:      "Filter-extraction model request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	ModelErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peoplefinder",
			Name:      "model_errors_total",
			Help:      "Total filter-extraction model errors",
		},
		[]string{"model", "error_type"},
	)

	CacheResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peoplefinder",
			Name:      "cache_results_total",
			Help:      "Filter cache lookups and writes by outcome",
		},
		[]string{"namespace", "result"}, // "ai_query"|"locations" x "hit"|"miss"|"error"
	)

	SearchPathTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peoplefinder",
			Name:      "search_path_total",
			Help:      "Searches by execution path",
		},
		[]string{"path"}, // "all" / "fallback" / "structured"
	)

	LocationResolutionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peoplefinder",
			Name:      "location_resolution_total",
			Help:      "Location candidates by resolution step",
		},
		[]string{"step"}, // "exact" / "fuzzy" / "contains"
	)
)

var registerPipelineOnce sync.Once

// RegisterPipelineMetrics registers the query pipeline metrics on the
// default registry. Safe to call more than once.
func RegisterPipelineMetrics() {
	registerPipelineOnce.Do(func() {
		prometheus.MustRegister(
			ModelRequestsTotal,
			ModelRequestDuration,
			ModelErrorsTotal,
			CacheResultsTotal,
			SearchPathTotal,
			LocationResolutionTotal,
		)
	})
}
