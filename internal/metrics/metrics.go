package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the flowershow Prometheus collectors on an isolated
// registry, so every server (and every test) gets its own set.
type Metrics struct {
	Registry *prometheus.Registry

	IndexBuildsTotal *prometheus.CounterVec
	IndexPages       prometheus.Gauge
	IndexGroups      prometheus.Gauge

	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec

	BuildInfo *prometheus.GaugeVec
}

// New creates a Metrics instance with all collectors registered. version is
// recorded as a label on the flowershow_info gauge.
func New(version string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())
	reg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: reg,

		IndexBuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowershow_index_builds_total",
				Help: "Total content index builds by result.",
			},
			[]string{"result"},
		),
		IndexPages: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "flowershow_index_pages",
				Help: "Number of published pages in the current index.",
			},
		),
		IndexGroups: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "flowershow_index_groups",
				Help: "Number of sitemap groups in the current index.",
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowershow_http_requests_total",
				Help: "Total HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flowershow_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		BuildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "flowershow_info",
				Help: "Build information for the running flowershow instance.",
			},
			[]string{"version"},
		),
	}

	reg.MustRegister(
		m.IndexBuildsTotal,
		m.IndexPages,
		m.IndexGroups,
		m.HTTPRequestsTotal,
		m.HTTPRequestDurationSeconds,
		m.BuildInfo,
	)
	m.BuildInfo.WithLabelValues(version).Set(1)

	return m
}

// RecordBuild counts a build attempt; on success the page and group gauges
// are updated. It is a no-op on a nil Metrics.
func (m *Metrics) RecordBuild(pages, groups int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.IndexBuildsTotal.WithLabelValues("error").Inc()
		return
	}
	m.IndexBuildsTotal.WithLabelValues("success").Inc()
	m.IndexPages.Set(float64(pages))
	m.IndexGroups.Set(float64(groups))
}

// Handler serves the Prometheus exposition for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
