package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "agritrace"

// Metrics holds the service collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	GRPCRequestsTotal   *prometheus.CounterVec
	LedgerEventsTotal   *prometheus.CounterVec
	CircuitBreakerState *prometheus.GaugeVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.GRPCRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grpc_requests_total",
			Help:      "Total number of gRPC requests by method and status code",
		},
		[]string{"method", "code"},
	)

	m.LedgerEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_events_total",
			Help:      "Total number of committed ledger events",
		},
		[]string{"type", "stage"},
	)

	m.CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	registry.MustRegister(
		m.GRPCRequestsTotal,
		m.LedgerEventsTotal,
		m.CircuitBreakerState,
	)
	return m
}

func (m *Metrics) ObserveRequest(method, code string) {
	m.GRPCRequestsTotal.WithLabelValues(method, code).Inc()
}

func (m *Metrics) ObserveEvent(eventType, stage string) {
	m.LedgerEventsTotal.WithLabelValues(eventType, stage).Inc()
}

func (m *Metrics) SetCircuitBreakerState(name string, state int) {
	m.CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
