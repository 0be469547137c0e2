// Package metrics holds the Prometheus instrumentation for the console: remote
// API calls, the query cache, scheduled jobs and the web console's own HTTP
// traffic. Everything registers on a private registry served by Handler.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "toolrent"

var (
	// APICalls counts remote service calls by route template and outcome
	APICalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "calls_total",
			Help:      "Total remote API calls.",
		},
		[]string{"method", "route", "outcome"}, // "ok" | "app_error" | "transport_error" | "malformed"
	)

	APICallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "call_duration_seconds",
			Help:      "Duration of remote API calls in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total query cache hits.",
		},
		[]string{"resource"},
	)
	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total query cache misses.",
		},
		[]string{"resource"},
	)
	CacheInvalidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "invalidations_total",
			Help:      "Total query cache entries dropped by invalidation.",
		},
		[]string{"resource"},
	)

	JobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "runs_total",
			Help:      "Total scheduled job runs.",
		},
		[]string{"job", "status"}, // "success" | "failed" | "panic"
	)
	JobDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "duration_seconds",
			Help:      "Duration of scheduled job runs in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"job"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "console",
			Name:      "request_duration_seconds",
			Help:      "Duration of console HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "console",
			Name:      "requests_total",
			Help:      "Total console HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "console",
		Name:      "requests_in_flight",
		Help:      "Console HTTP requests currently being served.",
	})
)

// Registry is the private registry every collector above is registered on
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	Registry.MustRegister(
		APICalls,
		APICallDuration,
		CacheHits,
		CacheMisses,
		CacheInvalidations,
		JobRuns,
		JobDuration,
		RequestDuration,
		RequestTotal,
		RequestInFlight,
	)
}

// ObserveAPICall records one remote call:
//
//	defer func(start time.Time) { metrics.ObserveAPICall("GET", "/tools", outcome, start) }(time.Now())
func ObserveAPICall(method, route, outcome string, start time.Time) {
	APICalls.WithLabelValues(method, route, outcome).Inc()
	APICallDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

// RecordJob records a scheduled job result
func RecordJob(job, status string, start time.Time) {
	JobRuns.WithLabelValues(job, status).Inc()
	JobDuration.WithLabelValues(job).Observe(time.Since(start).Seconds())
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records duration, count and in-flight requests for the console.
// Requests are labelled with the mux route name so ids in paths do not
// explode cardinality.
func Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			route := "unmatched"
			if cur := mux.CurrentRoute(r); cur != nil && cur.GetName() != "" {
				route = cur.GetName()
			}

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			status := strconv.Itoa(rr.status)
			RequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
			RequestTotal.WithLabelValues(r.Method, route, status).Inc()
		})
	}
}

// Handler exposes the registry for scraping
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
