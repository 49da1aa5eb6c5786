package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	ProgressRecomputeCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progress_recompute_count",
			Help: "Total number of project progress recomputations",
		},
		[]string{"result"}, // result: success, noop, error
	)

	InsightReportCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insight_report_count",
			Help: "Total number of insight reports served",
		},
		[]string{"source"}, // source: computed, cache
	)
)

// RecordHTTPRequestDuration records the latency of a handled request
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementProgressRecompute counts a progress recompute outcome
func IncrementProgressRecompute(result string) {
	ProgressRecomputeCount.WithLabelValues(result).Inc()
}

// IncrementInsightReport counts a served insight report by source
func IncrementInsightReport(source string) {
	InsightReportCount.WithLabelValues(source).Inc()
}
