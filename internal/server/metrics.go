package server

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cfgexplorer"

// Metrics exports explorer and HTTP events as Prometheus series. It
// implements both observability.ExplorerHooks and observability.HTTPHooks.
type Metrics struct {
	loads        *prometheus.CounterVec
	layoutNodes  prometheus.Histogram
	layoutTime   prometheus.Histogram
	renderTime   prometheus.Histogram
	actions      *prometheus.CounterVec
	requests     *prometheus.CounterVec
	responseTime *prometheus.HistogramVec
	sessions     prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_loaded_total",
			Help:      "Documents handed to an explorer, by outcome.",
		}, []string{"outcome"}),
		layoutNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_nodes",
			Help:      "Basic blocks per laid out function.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		layoutTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_duration_seconds",
			Help:      "Time spent computing a function layout.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		renderTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent painting one frame.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Key actions dispatched to explorers.",
		}, []string{"action", "handled"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and route.",
		}, []string{"method", "route"}),
		responseTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions",
			Help:      "Live explorer sessions.",
		}),
	}
	reg.MustRegister(m.loads, m.layoutNodes, m.layoutTime, m.renderTime,
		m.actions, m.requests, m.responseTime, m.sessions)
	return m
}

// =============================================================================
// Explorer hooks
// =============================================================================

func (m *Metrics) OnLoad(_ string, _ int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.loads.WithLabelValues(outcome).Inc()
}

func (m *Metrics) OnLayout(_ string, nodes, _ int, d time.Duration) {
	m.layoutNodes.Observe(float64(nodes))
	m.layoutTime.Observe(d.Seconds())
}

func (m *Metrics) OnRender(d time.Duration) {
	m.renderTime.Observe(d.Seconds())
}

func (m *Metrics) OnAction(action string, handled bool) {
	m.actions.WithLabelValues(action, strconv.FormatBool(handled)).Inc()
}

// =============================================================================
// HTTP hooks
// =============================================================================

func (m *Metrics) OnRequest(_ context.Context, method, route string) {
	m.requests.WithLabelValues(method, route).Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.responseTime.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

func (m *Metrics) OnSessionCount(_ context.Context, n int) {
	m.sessions.Set(float64(n))
}
