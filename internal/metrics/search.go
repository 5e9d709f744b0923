package metrics

import "github.com/prometheus/client_golang/prometheus"

// Image-search and gallery Prometheus metrics.
var (
	PixabayRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pixgallery",
			Name:      "pixabay_requests_total",
			Help:      "Total number of image-search API requests",
		},
		[]string{"status"}, // "success" / "error"
	)

	PixabayRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "pixgallery",
			Name:      "pixabay_request_duration_seconds",
			Help:      "Image-search API request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	PixabayErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pixgallery",
			Name:      "pixabay_errors_total",
			Help:      "Total image-search API errors",
		},
		[]string{"error_type"}, // "network" / "status" / "rate_limited" / "parse"
	)

	PageCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pixgallery",
			Name:      "page_cache_total",
			Help:      "Result page cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	QuotaRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pixgallery",
			Name:      "quota_rejected_total",
			Help:      "Image-search requests refused by the daily request quota",
		},
	)

	QuotaRemaining = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pixgallery",
			Name:      "quota_remaining_requests",
			Help:      "Image-search requests left today (-1 = unlimited)",
		},
	)

	CardsRenderedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pixgallery",
			Name:      "gallery_cards_rendered_total",
			Help:      "Total number of cards appended to galleries",
		},
	)

	NoticesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pixgallery",
			Name:      "gallery_notices_total",
			Help:      "Total notifications shown, by kind",
		},
		[]string{"kind"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers image-search and gallery metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(PixabayRequestsTotal)
	prometheus.MustRegister(PixabayRequestDuration)
	prometheus.MustRegister(PixabayErrorsTotal)
	prometheus.MustRegister(PageCacheTotal)
	prometheus.MustRegister(QuotaRejectedTotal)
	prometheus.MustRegister(QuotaRemaining)
	prometheus.MustRegister(CardsRenderedTotal)
	prometheus.MustRegister(NoticesTotal)
	searchMetricsRegistered = true
}
