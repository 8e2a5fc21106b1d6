package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"nodelete/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncEntriesAppended(kind string)
	IncLookupMisses(kind string)
	IncLogClears()
}

// LogStatsSource feeds the store gauges.
type LogStatsSource interface {
	ChannelCount() int
	EntriesTotal() int
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	entriesAppended     *prometheus.CounterVec
	lookupMisses        *prometheus.CounterVec
	logClears           prometheus.Counter
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncEntriesAppended(kind string) {
	m.entriesAppended.WithLabelValues(kind).Inc()
}

func (m *MetricsProvider) IncLookupMisses(kind string) {
	m.lookupMisses.WithLabelValues(kind).Inc()
}

func (m *MetricsProvider) IncLogClears() {
	m.logClears.Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, source LogStatsSource) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nodelete_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nodelete_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nodelete_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nodelete_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "nodelete_persistence_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		entriesAppended: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nodelete_entries_appended_total",
			Help: "Log entries appended, by entry type",
		}, []string{"type"}),

		lookupMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nodelete_lookup_misses_total",
			Help: "Message lookups that found nothing in the host cache, by entry type",
		}, []string{"type"}),

		logClears: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nodelete_log_clears_total",
			Help: "Total number of channel log clears",
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "nodelete_channels_total",
		Help: "Number of channels with a log",
	}, func() float64 {
		return float64(source.ChannelCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "nodelete_entries_total",
		Help: "Number of entries across all channel logs",
	}, func() float64 {
		return float64(source.EntriesTotal())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncEntriesAppended(_ string)                      {}
func (n *noopMetrics) IncLookupMisses(_ string)                         {}
func (n *noopMetrics) IncLogClears()                                    {}
