package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Search kinds used as the "kind" label.
const (
	KindSearch  = "search"
	KindSuggest = "suggest"
	KindSection = "section"
	KindPreview = "preview"
)

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Total number of listing searches",
		},
		[]string{"kind", "status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Time spent loading, filtering and ranking listings",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"kind"},
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of listings matched per search, before paging",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"kind"},
	)

	ListingsSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_skipped_total",
			Help:      "Stored listings left out of a search because they could not be read",
		},
		[]string{"reason"},
	)

	CatalogListings = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_listings",
			Help:      "Listings in the last loaded catalog snapshot",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(ListingsSkippedTotal)
	prometheus.MustRegister(CatalogListings)
	searchMetricsRegistered = true
}

// ObserveSearch records one finished search of the given kind.
func ObserveSearch(kind string, start time.Time, matched int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	SearchRequestsTotal.WithLabelValues(kind, status).Inc()
	SearchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err == nil {
		SearchResults.WithLabelValues(kind).Observe(float64(matched))
	}
}

// ObserveSnapshot records the size of a loaded catalog and its skipped records.
func ObserveSnapshot(loaded, skipped int) {
	CatalogListings.Set(float64(loaded))
	if skipped > 0 {
		ListingsSkippedTotal.WithLabelValues("malformed").Add(float64(skipped))
	}
}
