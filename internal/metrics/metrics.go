// Package metrics holds the prometheus collectors shared by the HTTP client
// and the query cache.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	ClientRequests *prometheus.CounterVec
	ClientDuration *prometheus.HistogramVec
	CacheEvents    *prometheus.CounterVec
	CacheEntries   prometheus.Gauge
	PageViews      *prometheus.CounterVec
}

// New creates collectors on a fresh registry so tests and multiple app
// instances do not collide on the global one.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		ClientRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "http_client",
			Name:      "requests_total",
			Help:      "Outgoing API requests by outcome kind.",
		}, []string{"kind"}),
		ClientDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "portfolio",
			Subsystem: "http_client",
			Name:      "request_duration_seconds",
			Help:      "Latency of outgoing API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		CacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "query_cache",
			Name:      "events_total",
			Help:      "Query cache lookups and evictions by event.",
		}, []string{"event"}),
		CacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "portfolio",
			Subsystem: "query_cache",
			Name:      "entries",
			Help:      "Number of entries currently held by the query cache.",
		}),
		PageViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "web",
			Name:      "page_views_total",
			Help:      "Page views by route. Visitors sending DNT are not counted.",
		}, []string{"route"}),
	}

	reg.MustRegister(
		m.ClientRequests,
		m.ClientDuration,
		m.CacheEvents,
		m.CacheEntries,
		m.PageViews,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry exposes the underlying registry (tests gather from it).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
