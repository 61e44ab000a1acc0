// Package metrics exposes Prometheus collectors for the dashboard.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "launchdash"

// View names recorded by ObserveView.
const (
	ViewOutcomes = "outcomes"
	ViewPoints   = "points"
)

// Metrics holds the dashboard collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	viewTotal    *prometheus.CounterVec
	viewDuration *prometheus.HistogramVec
	viewResults  *prometheus.HistogramVec
	records      prometheus.Gauge
	sites        prometheus.Gauge
}

// New creates the collectors and registers them, plus the Go runtime and
// process collectors, on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		viewTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_requests_total",
			Help:      "Total derived view computations by view and site selection",
		}, []string{"view", "site"}),
		viewDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "view_duration_seconds",
			Help:      "Time spent computing a derived view",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		}, []string{"view"}),
		viewResults: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "view_result_size",
			Help:      "Number of entries returned by a derived view",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"view"}),
		records: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_records",
			Help:      "Number of launch records in the loaded snapshot",
		}),
		sites: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_sites",
			Help:      "Number of distinct launch sites in the loaded snapshot",
		}),
	}
}

// SetDataset records the size of the loaded snapshot.
func (m *Metrics) SetDataset(records, sites int) {
	if m == nil {
		return
	}
	m.records.Set(float64(records))
	m.sites.Set(float64(sites))
}

// ObserveView records one view computation. A nil *Metrics is a no-op.
func (m *Metrics) ObserveView(view, site string, results int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.viewTotal.WithLabelValues(view, site).Inc()
	m.viewDuration.WithLabelValues(view).Observe(elapsed.Seconds())
	m.viewResults.WithLabelValues(view).Observe(float64(results))
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
