package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instrumentation of the dataset API.
type Metrics struct {
	registry *prometheus.Registry

	Loads        prometheus.Counter
	LoadFailures prometheus.Counter
	Queries      prometheus.Counter
	Exports      prometheus.Counter
}

// NewMetrics creates and registers the API counters on a dedicated
// registry, alongside the standard Go and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		Loads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cfemdash",
			Name:      "dataset_loads_total",
			Help:      "Successful dataset uploads.",
		}),
		LoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cfemdash",
			Name:      "dataset_load_failures_total",
			Help:      "Dataset uploads rejected by the pipeline.",
		}),
		Queries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cfemdash",
			Name:      "dataset_queries_total",
			Help:      "Filtered view queries served.",
		}),
		Exports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cfemdash",
			Name:      "dataset_exports_total",
			Help:      "CSV exports served.",
		}),
	}
	reg.MustRegister(m.Loads, m.LoadFailures, m.Queries, m.Exports)
	return m
}

// Handler exposes the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
