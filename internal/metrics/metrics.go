package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jk_http_requests_total",
			Help: "Total HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jk_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// ListingFetches counts incremental page fetches by outcome:
	// appended, exhausted, failed, stale.
	ListingFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jk_listing_fetches_total",
			Help: "Incremental listing page fetches by outcome",
		},
		[]string{"collection", "result"},
	)

	ListingFetchRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jk_listing_fetch_retries_total",
			Help: "Retried listing page fetches",
		},
		[]string{"collection"},
	)

	ListingViewsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "jk_listing_views_active",
			Help: "Mounted list views held in memory",
		},
	)

	ListingCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jk_listing_cache_total",
			Help: "First-page cache lookups by result: hit, miss, error",
		},
		[]string{"collection", "result"},
	)
)
