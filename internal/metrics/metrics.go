// Package metrics exposes Prometheus instrumentation for the fetch and
// cache layers.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the service. A nil *Metrics is a
// valid no-op receiver so callers never have to guard instrumentation.
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	CacheHits        *prometheus.CounterVec
	CacheMisses      *prometheus.CounterVec
	CacheCoalesced   *prometheus.CounterVec
	RefreshRuns      *prometheus.CounterVec
	EventCount       *prometheus.GaugeVec
}

// NewMetrics creates a new metrics instance registered on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		UpstreamRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "actcal",
				Name:      "upstream_requests_total",
				Help:      "Total number of upstream requests",
			},
			[]string{"source", "status"},
		),
		UpstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "actcal",
				Name:      "upstream_request_duration_seconds",
				Help:      "Upstream request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		CacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "actcal",
				Name:      "cache_hits_total",
				Help:      "Cache lookups answered from a live entry",
			},
			[]string{"key"},
		),
		CacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "actcal",
				Name:      "cache_misses_total",
				Help:      "Cache lookups that started a producer",
			},
			[]string{"key"},
		),
		CacheCoalesced: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "actcal",
				Name:      "cache_coalesced_total",
				Help:      "Cache lookups that attached to an in-flight producer",
			},
			[]string{"key"},
		),
		RefreshRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "actcal",
				Name:      "refresh_runs_total",
				Help:      "Scheduled warm-sweep outcomes per game",
			},
			[]string{"game", "outcome"},
		),
		EventCount: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "actcal",
				Name:      "events_last_fetch",
				Help:      "Events produced by the most recent pipeline run",
			},
			[]string{"game"},
		),
	}
}

// ObserveUpstream records one upstream round trip.
func (m *Metrics) ObserveUpstream(source, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(source, status).Inc()
	m.UpstreamDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// CacheHit records a lookup served from a live entry.
func (m *Metrics) CacheHit(key string) {
	if m == nil {
		return
	}
	m.CacheHits.WithLabelValues(key).Inc()
}

// CacheMiss records a lookup that had to start a producer.
func (m *Metrics) CacheMiss(key string) {
	if m == nil {
		return
	}
	m.CacheMisses.WithLabelValues(key).Inc()
}

// CacheCoalescedWait records a lookup that joined an in-flight producer.
func (m *Metrics) CacheCoalescedWait(key string) {
	if m == nil {
		return
	}
	m.CacheCoalesced.WithLabelValues(key).Inc()
}

// RefreshRun records the outcome of one scheduled refresh for a game.
func (m *Metrics) RefreshRun(game, outcome string) {
	if m == nil {
		return
	}
	m.RefreshRuns.WithLabelValues(game, outcome).Inc()
}

// SetEventCount records how many events the last pipeline run produced.
func (m *Metrics) SetEventCount(game string, n int) {
	if m == nil {
		return
	}
	m.EventCount.WithLabelValues(game).Set(float64(n))
}
