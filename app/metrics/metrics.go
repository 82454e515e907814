// Package metrics exposes the service's Prometheus instruments.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every instrument. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	ContentLoads        *prometheus.CounterVec
	ModerationDecisions *prometheus.CounterVec
	CommentsSubmitted   prometheus.Counter
	CommentStoreErrors  *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec
}

// New registers all instruments on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ContentLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_content_loads_total",
			Help: "Content loads by source (remote or seed)",
		}, []string{"source"}),
		ModerationDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_moderation_decisions_total",
			Help: "Automatic moderation decisions by outcome",
		}, []string{"outcome"}),
		CommentsSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_comments_submitted_total",
			Help: "Comments submitted through the public form",
		}),
		CommentStoreErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_comment_store_errors_total",
			Help: "Comment store failures by operation",
		}, []string{"op"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portfolio_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordContentLoad(source string) {
	if m == nil {
		return
	}
	m.ContentLoads.WithLabelValues(source).Inc()
}

func (m *Metrics) RecordModeration(outcome string) {
	if m == nil {
		return
	}
	m.ModerationDecisions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordCommentSubmitted() {
	if m == nil {
		return
	}
	m.CommentsSubmitted.Inc()
}

func (m *Metrics) RecordStoreError(op string) {
	if m == nil {
		return
	}
	m.CommentStoreErrors.WithLabelValues(op).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
