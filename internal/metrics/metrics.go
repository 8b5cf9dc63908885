package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

// Registration outcomes.
const (
	OutcomeCreated   = "created"
	OutcomeInvalid   = "invalid"
	OutcomeMalformed = "malformed"
	OutcomeDuplicate = "duplicate"
	OutcomeError     = "error"
)

type Metrics struct {
	registry      *prometheus.Registry
	registrations *prometheus.CounterVec
	tokenFailures prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "players",
			Name:      "registrations_total",
			Help:      "Registration requests by outcome.",
		}, []string{"outcome"}),
		tokenFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "players",
			Name:      "token_failures_total",
			Help:      "Players stored whose token could not be signed.",
		}),
	}
	reg.MustRegister(
		m.registrations,
		m.tokenFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registration(outcome string) {
	m.registrations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) TokenFailure() {
	m.tokenFailures.Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
