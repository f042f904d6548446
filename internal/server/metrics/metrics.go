// Package metrics exposes Prometheus instruments for the registration and
// authentication flows.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultSuccess            = "success"
	ResultInvalidInput       = "invalid_input"
	ResultUsernameTaken      = "username_taken"
	ResultInvalidCredentials = "invalid_credentials"
	ResultError              = "error"
)

// Metrics groups the flow instruments together with the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	registrations *prometheus.CounterVec
	logins        *prometheus.CounterVec
	hashDuration  prometheus.Histogram
}

// New registers the flow instruments, plus Go runtime and process collectors,
// in a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gophauth_registrations_total",
			Help: "Total number of registration attempts by result",
		}, []string{"result"}),
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gophauth_logins_total",
			Help: "Total number of login attempts by result",
		}, []string{"result"}),
		hashDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gophauth_password_hash_seconds",
			Help:    "Histogram of password hash and verify latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
	}
}

// Registration counts one registration attempt. A nil receiver is a no-op.
func (m *Metrics) Registration(result string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(result).Inc()
}

// Login counts one login attempt. A nil receiver is a no-op.
func (m *Metrics) Login(result string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(result).Inc()
}

// ObserveHash records how long a hash or verify call took.
func (m *Metrics) ObserveHash(d time.Duration) {
	if m == nil {
		return
	}
	m.hashDuration.Observe(d.Seconds())
}

// Registry returns the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
