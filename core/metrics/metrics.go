package metrics

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "font_helper"

// Metrics holds the collectors for the server and its supervisor.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal *prometheus.CounterVec
	faultsTotal   *prometheus.CounterVec
	restartsTotal prometheus.Counter
	state         prometheus.Gauge
}

// New registers the collectors on a fresh registry, plus Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "requests_total",
			Help:      "Requests dispatched, by method and response status.",
		}, []string{"method", "status"}),
		faultsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "faults_total",
			Help:      "Abrupt failures, by classification and where they were handled.",
		}, []string{"kind", "handled_by"}),
		restartsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "restarts_total",
			Help:      "Serving loop restarts after a client disconnect fault.",
		}),
		state: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "server_state",
			Help:      "Current supervisor state (0 starting, 1 running, 2 restarting, 3 stopped, 4 fatally faulted).",
		}),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveRequest counts one dispatched request.
func (m *Metrics) ObserveRequest(method string, status int) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// ObserveFault counts one classified fault.
func (m *Metrics) ObserveFault(kind, handledBy string) {
	if m == nil {
		return
	}
	m.faultsTotal.WithLabelValues(kind, handledBy).Inc()
}

// ObserveRestart counts one supervisor restart.
func (m *Metrics) ObserveRestart() {
	if m == nil {
		return
	}
	m.restartsTotal.Inc()
}

// SetState records the supervisor state.
func (m *Metrics) SetState(state int) {
	if m == nil {
		return
	}
	m.state.Set(float64(state))
}

// Handler serves the Prometheus exposition format through fiber.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
