// Package metrics exposes the usage ledger as Prometheus gauges for the
// serve command, plus a compact JSON summary endpoint.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus registry for the quill serve endpoint.
type Metrics struct {
	registry *prometheus.Registry
}

// New creates a private registry with runtime collectors and the usage
// ledger collector registered.
func New(statFunc UsageStatFunc) *Metrics {
	reg := prometheus.NewRegistry()

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(NewUsageCollector(statFunc))

	return &Metrics{registry: reg}
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
