package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "orderpay"

// Metrics owns its registry so several instances (tests, two binaries)
// never collide on registration.
type Metrics struct {
	reg *prometheus.Registry

	OrdersCreated     prometheus.Counter
	OrderTransitions  *prometheus.CounterVec
	PaymentsProcessed *prometheus.CounterVec
	GatewayLatency    *prometheus.HistogramVec
	HTTPRequests      *prometheus.CounterVec
	HTTPLatency       *prometheus.HistogramVec
}

func NewMetrics(service string) *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "orders_created_total",
			Help:      "Orders created.",
		}),
		OrderTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "order_transitions_total",
			Help:      "Order status transitions by target status.",
		}, []string{"to"}),
		PaymentsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "payments_processed_total",
			Help:      "Persisted payments by method and status.",
		}, []string{"method", "status"}),
		GatewayLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "gateway_call_duration_ms",
			Help:      "Gateway call latency in milliseconds, retries included.",
			Buckets:   []float64{5, 10, 25, 50, 100, 150, 250, 500, 1000, 2500, 5000},
		}, []string{"method", "status"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"route", "status"}),
		HTTPLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"route"}),
	}
	m.reg.MustRegister(
		m.OrdersCreated,
		m.OrderTransitions,
		m.PaymentsProcessed,
		m.GatewayLatency,
		m.HTTPRequests,
		m.HTTPLatency,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) OrdersCreatedAdd(n int) {
	m.OrdersCreated.Add(float64(n))
}

func (m *Metrics) OrderTransitioned(to string) {
	m.OrderTransitions.WithLabelValues(to).Inc()
}

func (m *Metrics) PaymentProcessed(method, status string) {
	m.PaymentsProcessed.WithLabelValues(method, status).Inc()
}

func (m *Metrics) GatewayCall(method, status string, d time.Duration) {
	m.GatewayLatency.WithLabelValues(method, status).Observe(float64(d.Milliseconds()))
}

func (m *Metrics) HTTPRequest(route, status string, d time.Duration) {
	m.HTTPRequests.WithLabelValues(route, status).Inc()
	m.HTTPLatency.WithLabelValues(route).Observe(float64(d.Milliseconds()))
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
