// Package metrics owns the process Prometheus collectors
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langid_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "langid_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	detectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langid_detections_total",
			Help: "Detections by top language and reliability",
		},
		[]string{"language", "reliable"},
	)

	detectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "langid_detection_duration_seconds",
			Help:    "Time spent in a single detection",
			Buckets: []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .1},
		},
	)

	textBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "langid_detection_text_bytes",
			Help:    "Size of detected texts in bytes",
			Buckets: []float64{0, 16, 64, 256, 1024, 4096, 16384, 65536, 262144},
		},
	)

	batchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "langid_batch_size",
			Help:    "Number of texts per batch request",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	rateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langid_rate_limit_hits_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"route"},
	)

	modelLanguages = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "langid_model_languages",
			Help: "Languages in the loaded model, 0 until a model is loaded",
		},
	)

	modelLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langid_model_loads_total",
			Help: "Model load attempts by outcome",
		},
		[]string{"status"}, // ok, error
	)
)

// RecordHTTP records one served request. route should be the matched pattern, not the raw path
func RecordHTTP(method, route string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordDetection records one detection outcome
func RecordDetection(language string, reliable bool, bytes int, elapsed time.Duration) {
	detectionsTotal.WithLabelValues(language, strconv.FormatBool(reliable)).Inc()
	detectionDuration.Observe(elapsed.Seconds())
	textBytes.Observe(float64(bytes))
}

// RecordBatch records the size of one batch request
func RecordBatch(n int) { batchSize.Observe(float64(n)) }

// RecordRateLimited counts a rejected request
func RecordRateLimited(route string) { rateLimitHits.WithLabelValues(route).Inc() }

// RecordModelLoad counts a load attempt and publishes the language count on success
func RecordModelLoad(languages int, err error) {
	if err != nil {
		modelLoads.WithLabelValues("error").Inc()
		return
	}
	modelLoads.WithLabelValues("ok").Inc()
	modelLanguages.Set(float64(languages))
}

// Handler serves the default registry in the Prometheus text format
func Handler() http.Handler { return promhttp.Handler() }
