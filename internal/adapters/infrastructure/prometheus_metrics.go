package infrastructure

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"weatherproxy.app/internal/ports"
)

// PrometheusMetrics implements ports.CacheMetrics and ports.UpstreamMetrics.
// Cache counters are also kept in process for the JSON metrics endpoint.
type PrometheusMetrics struct {
	cacheType string

	mu     sync.RWMutex
	hits   int64
	misses int64

	cacheHits        *prometheus.CounterVec
	cacheMisses      *prometheus.CounterVec
	cacheRequests    *prometheus.CounterVec
	cacheLatency     *prometheus.HistogramVec
	cacheHitRatio    *prometheus.GaugeVec
	upstreamCalls    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

// NewPrometheusMetrics registers all collectors on reg
func NewPrometheusMetrics(reg prometheus.Registerer, cacheType string) *PrometheusMetrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		cacheType: cacheType,
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weatherproxy_cache_hits_total",
				Help: "The total number of cache hits",
			},
			[]string{"cache_type"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weatherproxy_cache_misses_total",
				Help: "The total number of cache misses",
			},
			[]string{"cache_type"},
		),
		cacheRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weatherproxy_cache_requests_total",
				Help: "The total number of cache lookups",
			},
			[]string{"cache_type"},
		),
		cacheLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "weatherproxy_cache_duration_seconds",
				Help:    "Cache operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"cache_type", "operation"},
		),
		cacheHitRatio: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "weatherproxy_cache_hit_ratio",
				Help: "Cache hit ratio (hits/total lookups)",
			},
			[]string{"cache_type"},
		),
		upstreamCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weatherproxy_upstream_requests_total",
				Help: "Requests sent to the weather provider by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		upstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "weatherproxy_upstream_duration_seconds",
				Help:    "Weather provider request duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 6},
			},
			[]string{"endpoint"},
		),
	}
}

func (m *PrometheusMetrics) RecordHit() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hits++
	m.cacheHits.WithLabelValues(m.cacheType).Inc()
	m.cacheRequests.WithLabelValues(m.cacheType).Inc()
	m.updateHitRatio()
}

func (m *PrometheusMetrics) RecordMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.misses++
	m.cacheMisses.WithLabelValues(m.cacheType).Inc()
	m.cacheRequests.WithLabelValues(m.cacheType).Inc()
	m.updateHitRatio()
}

func (m *PrometheusMetrics) RecordOperation(operation string, duration time.Duration) {
	m.cacheLatency.WithLabelValues(m.cacheType, operation).Observe(duration.Seconds())
}

// updateHitRatio must be called while holding the mutex.
func (m *PrometheusMetrics) updateHitRatio() {
	if total := m.hits + m.misses; total > 0 {
		m.cacheHitRatio.WithLabelValues(m.cacheType).Set(float64(m.hits) / float64(total))
	}
}

func (m *PrometheusMetrics) GetStats() ports.CacheStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := m.hits + m.misses
	var hitRatio float64
	if total > 0 {
		hitRatio = float64(m.hits) / float64(total)
	}

	return ports.CacheStats{
		Hits:        m.hits,
		Misses:      m.misses,
		TotalOps:    total,
		HitRatio:    hitRatio,
		LastUpdated: time.Now(),
	}
}

func (m *PrometheusMetrics) RecordUpstreamCall(endpoint string, outcome string, duration time.Duration) {
	m.upstreamCalls.WithLabelValues(endpoint, outcome).Inc()
	m.upstreamDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
