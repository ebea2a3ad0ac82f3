package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"airspace-checker/collision"
)

// checkCollector bundles the Prometheus metrics exposed on /metrics.
type checkCollector struct {
	gatherer prometheus.Gatherer

	Checks         *prometheus.CounterVec
	CheckDurations *prometheus.HistogramVec
	ZonesLoaded    prometheus.Gauge
}

// newCheckCollector registers the airspace metrics with reg. A nil reg
// falls back to the default registerer. The server constructs exactly one
// collector at boot, so registration failures panic via MustRegister;
// tests pass a fresh prometheus.NewRegistry().
func newCheckCollector(reg prometheus.Registerer) *checkCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &checkCollector{
		gatherer: gatherer,
		Checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "airspace_checks_total",
			Help: "Collision checks served, labeled by query kind and verdict severity.",
		}, []string{"kind", "severity"}),
		CheckDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "airspace_check_duration_seconds",
			Help:    "Latency of a single collision check.",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}, []string{"kind"}),
		ZonesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "airspace_zones_loaded",
			Help: "Zones currently held in the active catalog.",
		}),
	}
	reg.MustRegister(c.Checks, c.CheckDurations, c.ZonesLoaded)
	return c
}

// observe records one finished check of the given kind.
func (c *checkCollector) observe(kind string, severity collision.Severity, start time.Time) {
	c.Checks.WithLabelValues(kind, severity.String()).Inc()
	c.CheckDurations.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// handler serves the metrics page for the registry this collector
// registered into.
func (c *checkCollector) handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
