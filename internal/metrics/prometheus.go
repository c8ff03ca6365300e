package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder against a Prometheus registry.
type PrometheusRecorder struct {
	registry     *prometheus.Registry
	cacheLookups *prometheus.CounterVec
	renders      *prometheus.CounterVec
	upstream     *prometheus.HistogramVec
}

// NewPrometheusRecorder creates a recorder with its own registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()

	r := &PrometheusRecorder{
		registry: registry,
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "content_cache_lookups_total",
			Help: "Content cache lookups by result.",
		}, []string{"result"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "document_renders_total",
			Help: "Document renders by kind and outcome.",
		}, []string{"kind", "outcome"}),
		upstream: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Upstream commerce API request durations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint", "outcome"}),
	}

	registry.MustRegister(r.cacheLookups, r.renders, r.upstream)
	return r
}

// IncCacheLookup counts one cache lookup. The key itself is not a label
// to keep cardinality bounded.
func (r *PrometheusRecorder) IncCacheLookup(_ string, result CacheResult) {
	r.cacheLookups.WithLabelValues(string(result)).Inc()
}

// IncRender counts one document render.
func (r *PrometheusRecorder) IncRender(kind string, success bool) {
	r.renders.WithLabelValues(kind, outcome(success)).Inc()
}

// ObserveUpstreamDuration records one upstream call.
func (r *PrometheusRecorder) ObserveUpstreamDuration(endpoint string, d time.Duration, success bool) {
	r.upstream.WithLabelValues(endpoint, outcome(success)).Observe(d.Seconds())
}

// Handler serves the registry in Prometheus exposition format.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

var _ Recorder = (*PrometheusRecorder)(nil)
