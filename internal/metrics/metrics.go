// Package metrics exports Prometheus metrics for title generation and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "paragraph_titler"

// Recorder owns a private registry. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	titlesGenerated    *prometheus.CounterVec
	generationFailures prometheus.Counter
	generationLatency  prometheus.Histogram
	httpRequests       *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.titlesGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "titles_generated_total",
			Help:      "Titles generated, by status and confidence label",
		},
		[]string{"status", "confidence"},
	)
	r.generationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generation_failures_total",
		Help:      "Model calls that returned an error",
	})
	r.generationLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "generation_latency_seconds",
		Help:      "Model call latency in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})
	r.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "code"},
	)

	r.registry.MustRegister(r.titlesGenerated, r.generationFailures, r.generationLatency, r.httpRequests)
	return r
}

func (r *Recorder) ObserveTitle(status, confidence string, processingTimeMs float64) {
	if r == nil {
		return
	}
	r.titlesGenerated.WithLabelValues(status, confidence).Inc()
	r.generationLatency.Observe(processingTimeMs / 1000)
}

func (r *Recorder) ObserveFailure() {
	if r == nil {
		return
	}
	r.generationFailures.Inc()
}

func (r *Recorder) ObserveRequest(method, route string, code int) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
