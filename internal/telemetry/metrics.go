package telemetry

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	FeedRequests          = prometheus.NewCounter(prometheus.CounterOpts{Name: "feed_requests_total", Help: "Calendar feed requests served"})
	FeedCacheHits         = prometheus.NewCounter(prometheus.CounterOpts{Name: "feed_cache_hits_total", Help: "Requests answered from the response cache"})
	FeedNotModified       = prometheus.NewCounter(prometheus.CounterOpts{Name: "feed_not_modified_total", Help: "Conditional requests answered with 304"})
	UpstreamErrors        = prometheus.NewCounter(prometheus.CounterOpts{Name: "feed_upstream_errors_total", Help: "Failed job-listing calls"})
	EnrichmentFailures    = prometheus.NewCounter(prometheus.CounterOpts{Name: "feed_enrichment_failures_total", Help: "Per-job operation fetches that failed"})
	LastRenderEventsGauge = prometheus.NewGauge(prometheus.GaugeOpts{Name: "feed_last_render_events", Help: "Events in the most recently rendered feed"})
)

// Handler exposes /metrics HTTP handler with a singleton registry.
func Handler() http.Handler {
	once.Do(func() {
		prometheus.MustRegister(
			FeedRequests,
			FeedCacheHits,
			FeedNotModified,
			UpstreamErrors,
			EnrichmentFailures,
			LastRenderEventsGauge,
		)
	})
	return promhttp.Handler()
}
