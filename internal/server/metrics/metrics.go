// Package metrics exposes Prometheus metrics for the homepage server.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "homepage"

// Recorder holds the server's collectors on a private registry.
type Recorder struct {
	registry        *prom.Registry
	requests        *prom.CounterVec
	requestDuration *prom.HistogramVec
	chatMessages    *prom.CounterVec
	scholarLookups  *prom.CounterVec
	starFetches     *prom.CounterVec
}

// New constructs a Recorder and registers its collectors together with the
// Go runtime and process collectors.
func New() *Recorder {
	reg := prom.NewRegistry()
	r := &Recorder{
		registry: reg,
		requests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code",
		}, []string{"route", "method", "status"}),
		requestDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prom.DefBuckets,
		}, []string{"route"}),
		chatMessages: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "chat_messages_total",
			Help:      "Chat requests by outcome",
		}, []string{"outcome"}),
		scholarLookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "scholar_lookups_total",
			Help:      "Citation lookups by the source that answered",
		}, []string{"source"}),
		starFetches: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "star_fetches_total",
			Help:      "GitHub star count fetches by result",
		}, []string{"result"}),
	}
	reg.MustRegister(
		r.requests, r.requestDuration, r.chatMessages, r.scholarLookups, r.starFetches,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Registry returns the registry backing the recorder.
func (r *Recorder) Registry() *prom.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// ObserveRequest records one HTTP request. It matches middleware.Observer.
func (r *Recorder) ObserveRequest(method, path string, status int, duration time.Duration) {
	route := Route(path)
	r.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// ChatMessage records a chat request outcome ("ok" or "invalid").
func (r *Recorder) ChatMessage(outcome string) {
	r.chatMessages.WithLabelValues(outcome).Inc()
}

// ScholarLookup records which source answered a citation lookup.
func (r *Recorder) ScholarLookup(source string) {
	r.scholarLookups.WithLabelValues(source).Inc()
}

// StarFetch records a star count fetch result.
func (r *Recorder) StarFetch(ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	r.starFetches.WithLabelValues(result).Inc()
}

// Route collapses a request path into a bounded label value. API paths are
// kept, everything else is static content.
func Route(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/"), path == "/health", path == "/metrics":
		return strings.TrimSuffix(path, "/")
	default:
		return "static"
	}
}
