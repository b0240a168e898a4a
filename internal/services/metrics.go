package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// comparisonsTotal counts pipeline runs by mode and outcome
	// (ok|validation_error|fetch_error).
	comparisonsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comparisons_total",
			Help: "Total number of comparison requests by mode and outcome.",
		},
		[]string{"mode", "outcome"},
	)

	// comparisonItems counts assembled items by status.
	comparisonItems = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comparison_items_total",
			Help: "Comparison items produced, by mode and status.",
		},
		[]string{"mode", "status"},
	)

	searchRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Search requests by entity kind.",
		},
		[]string{"kind"},
	)

	// fetchDuration times each batched call to the backing store.
	fetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "datasource_fetch_duration_seconds",
			Help:    "Duration of batched data source calls in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(comparisonsTotal, comparisonItems, searchRequests, fetchDuration)
}

// observeFetch records the elapsed time since start under op.
func observeFetch(op string, start time.Time) {
	fetchDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
