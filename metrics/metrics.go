package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geocache_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"route", "status"})
	SearchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geocache_searches_total",
		Help: "Geocache searches by outcome (ok, input, connection, query)",
	}, []string{"outcome"})
	SearchDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "geocache_search_duration_ms",
		Help:    "Geocache search duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	})
	SearchResultsCount = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "geocache_search_results",
		Help:    "Number of geocaches returned per successful search",
		Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
	})
	PhotoLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geocache_photo_lookups_total",
		Help: "Photo lookups by status (ok, empty, unavailable)",
	}, []string{"status"})
	PhotoCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geocache_photo_cache_hits_total",
		Help: "Photo cache hits",
	})
	PhotoCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geocache_photo_cache_misses_total",
		Help: "Photo cache misses",
	})
	FlickrDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "geocache_flickr_duration_ms",
		Help:    "Flickr photo search call duration in milliseconds",
		Buckets: []float64{10, 50, 100, 200, 500, 1000, 5000, 10000},
	})
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDurationMs)
	prometheus.MustRegister(SearchResultsCount)
	prometheus.MustRegister(PhotoLookupsTotal)
	prometheus.MustRegister(PhotoCacheHitsTotal)
	prometheus.MustRegister(PhotoCacheMissesTotal)
	prometheus.MustRegister(FlickrDurationMs)
}

// Handler exposes the registered metrics for scraping on /metrics.
func Handler() http.Handler { return promhttp.Handler() }
