package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"repopulse/internal/structures"
	"time"
)

// ProgressReporter exposes run progress to gauges and the health endpoint.
type ProgressReporter interface {
	Processed() int
	Skipped() int
	Pending() int
	Current() string
}

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncSourceCalls(operation string, ok bool)
	IncUnavailableRepositories()
	ObserveScore(score float64)
	SetHistoriesTotal(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	sourceCalls         *prometheus.CounterVec
	unavailableRepos    prometheus.Counter
	scores              prometheus.Histogram
	historiesTotal      prometheus.Gauge
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

func (m *MetricsProvider) IncSourceCalls(operation string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "unavailable"
	}
	m.sourceCalls.WithLabelValues(operation, outcome).Inc()
}

func (m *MetricsProvider) IncUnavailableRepositories() {
	m.unavailableRepos.Inc()
}

func (m *MetricsProvider) ObserveScore(score float64) {
	m.scores.Observe(score)
}

func (m *MetricsProvider) SetHistoriesTotal(count int) {
	m.historiesTotal.Set(float64(count))
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

func NewMetricsProvider(conf *structures.Config, progress ProgressReporter) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "repopulse_requests_total",
			Help: "Total number of HTTP requests served by the status server",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "repopulse_request_duration_seconds",
			Help:    "Status server request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "repopulse_cache_hits_total",
			Help: "Total number of source cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "repopulse_cache_misses_total",
			Help: "Total number of source cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "repopulse_persistence_duration_seconds",
			Help:    "Duration of checkpoint writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		sourceCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "repopulse_source_calls_total",
			Help: "Metric source operations by outcome",
		}, []string{"operation", "outcome"}),

		unavailableRepos: promauto.NewCounter(prometheus.CounterOpts{
			Name: "repopulse_unavailable_repositories_total",
			Help: "Repositories recorded without a single available metric",
		}),

		scores: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "repopulse_composite_score",
			Help:    "Distribution of composite month-over-month scores",
			Buckets: []float64{-0.3, -0.1, 0, 0.1, 0.3},
		}),

		historiesTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "repopulse_histories_total",
			Help: "Repository histories held in the checkpoint",
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "repopulse_repositories_processed",
		Help: "Repositories processed in the current run",
	}, func() float64 {
		return float64(progress.Processed())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "repopulse_repositories_pending",
		Help: "Repositories still to process in the current run",
	}, func() float64 {
		return float64(progress.Pending())
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
func (n *noopMetrics) IncSourceCalls(_ string, _ bool)                  {}
func (n *noopMetrics) IncUnavailableRepositories()                      {}
func (n *noopMetrics) ObserveScore(_ float64)                           {}
func (n *noopMetrics) SetHistoriesTotal(_ int)                          {}
