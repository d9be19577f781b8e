// ABOUTME: Prometheus collectors for outbound fetches, admission decisions and discovery runs
// ABOUTME: Collectors are registered by Init; until then every Observe call is a no-op

package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes
const (
	OutcomeOK                  = "ok"
	OutcomeTimeout             = "timeout"
	OutcomeOversized           = "oversized"
	OutcomeUnsupportedProtocol = "unsupported_protocol"
	OutcomeBlocked             = "blocked"
	OutcomeError               = "error"
)

// Discovery pipelines
const (
	PipelineBrand   = "brand"
	PipelineScripts = "scripts"
)

var (
	fetchesTotal               *prometheus.CounterVec
	fetchBytesTotal            prometheus.Counter
	fetchDurationSeconds       *prometheus.HistogramVec
	hostThrottleSeconds        prometheus.Histogram
	rateLimitDecisionsTotal    *prometheus.CounterVec
	discoveriesTotal           *prometheus.CounterVec
	discoveryDurationSeconds   *prometheus.HistogramVec
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec

	once    sync.Once
	enabled atomic.Bool
)

// Init registers the collectors with the default registry and turns the
// Observe functions on. It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		fetchesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brandscout_fetches_total",
				Help: "Outbound page fetches, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		fetchBytesTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "brandscout_fetch_bytes_total",
				Help: "Body bytes accepted from upstream sites.",
			},
		)

		fetchDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "brandscout_fetch_duration_seconds",
				Help:    "Outbound fetch latency, labeled by outcome.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"outcome"},
		)

		hostThrottleSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "brandscout_host_throttle_seconds",
				Help:    "Time spent waiting on the per-host outbound throttle.",
				Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 5},
			},
		)

		rateLimitDecisionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brandscout_ratelimit_decisions_total",
				Help: "Admission decisions, labeled by result.",
			},
			[]string{"result"},
		)

		discoveriesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brandscout_discoveries_total",
				Help: "Discovery runs, labeled by pipeline and status.",
			},
			[]string{"pipeline", "status"},
		)

		discoveryDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "brandscout_discovery_duration_seconds",
				Help:    "End-to-end discovery latency, labeled by pipeline.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
			},
			[]string{"pipeline"},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		)
	})
	enabled.Store(true)
}

// Enabled reports whether Init has run
func Enabled() bool {
	return enabled.Load()
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveFetch records one outbound fetch
func ObserveFetch(outcome string, bytesRead int, duration time.Duration) {
	if !enabled.Load() {
		return
	}
	fetchesTotal.WithLabelValues(outcome).Inc()
	fetchDurationSeconds.WithLabelValues(outcome).Observe(duration.Seconds())
	if bytesRead > 0 {
		fetchBytesTotal.Add(float64(bytesRead))
	}
}

// ObserveHostThrottle records time spent waiting for a per-host token
func ObserveHostThrottle(duration time.Duration) {
	if !enabled.Load() {
		return
	}
	hostThrottleSeconds.Observe(duration.Seconds())
}

// ObserveRateLimit records one admission decision
func ObserveRateLimit(allowed bool) {
	if !enabled.Load() {
		return
	}
	result := "allowed"
	if !allowed {
		result = "denied"
	}
	rateLimitDecisionsTotal.WithLabelValues(result).Inc()
}

// ObserveDiscovery records one pipeline run. err decides the status label.
func ObserveDiscovery(pipeline string, err error, duration time.Duration) {
	if !enabled.Load() {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	discoveriesTotal.WithLabelValues(pipeline, status).Inc()
	discoveryDurationSeconds.WithLabelValues(pipeline).Observe(duration.Seconds())
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	if !enabled.Load() {
		return
	}
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}
