package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/uni-schedule-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheWrite      prometheus.Observer
	cacheHitRatio   prometheus.Gauge
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	dbQueryDuration *prometheus.HistogramVec

	conflictQueryDuration *prometheus.HistogramVec
	conflictsDetected     *prometheus.CounterVec
	workloadWarnings      *prometheus.CounterVec
	invalidTemplates      prometheus.Counter
	occurrencesExpanded   prometheus.Histogram

	cacheHitCount        uint64
	cacheMissCount       uint64
	requestCount         uint64
	requestDurationTotal uint64
	dbQueryCount         uint64
	dbQueryDurationTotal uint64
	conflictQueryCount   uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	dbQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database fetches feeding conflict queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	conflictQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "conflict_query_duration_seconds",
		Help:    "Time spent answering conflict and workload queries",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"query"})

	conflictsDetected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "conflicts_detected_total",
		Help: "Conflicting occurrence pairs reported, by kind",
	}, []string{"kind"})

	workloadWarnings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "workload_warnings_total",
		Help: "Workload warnings reported, by kind",
	}, []string{"kind"})

	invalidTemplates := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "invalid_templates_total",
		Help: "Recurring templates skipped because they failed validation",
	})

	occurrencesExpanded := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "occurrences_expanded",
		Help:    "Lesson occurrences built per query",
		Buckets: prometheus.ExponentialBuckets(10, 4, 7),
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(
		requestDuration, requestTotal,
		cacheLatency, cacheWrite, cacheHitRatio, cacheHits, cacheMisses,
		dbQueryDuration,
		conflictQueryDuration, conflictsDetected, workloadWarnings, invalidTemplates, occurrencesExpanded,
		goroutines,
		collectors.NewGoCollector(),
	)

	return &MetricsService{
		registry:              registry,
		handler:               promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:       requestDuration,
		requestTotal:          requestTotal,
		cacheLatency:          cacheLatency,
		cacheWrite:            cacheWrite,
		cacheHitRatio:         cacheHitRatio,
		cacheHits:             cacheHits,
		cacheMisses:           cacheMisses,
		dbQueryDuration:       dbQueryDuration,
		conflictQueryDuration: conflictQueryDuration,
		conflictsDetected:     conflictsDetected,
		workloadWarnings:      workloadWarnings,
		invalidTemplates:      invalidTemplates,
		occurrencesExpanded:   occurrencesExpanded,
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	total := hits + atomic.LoadUint64(&m.cacheMissCount)
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveDBQuery records database fetch timing.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
	atomic.AddUint64(&m.dbQueryCount, 1)
	atomic.AddUint64(&m.dbQueryDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveConflictQuery records the latency of one façade query.
func (m *MetricsService) ObserveConflictQuery(query string, duration time.Duration) {
	if m == nil {
		return
	}
	m.conflictQueryDuration.WithLabelValues(query).Observe(duration.Seconds())
	atomic.AddUint64(&m.conflictQueryCount, 1)
}

// RecordConflicts counts reported conflict pairs.
func (m *MetricsService) RecordConflicts(single, shared int) {
	if m == nil {
		return
	}
	m.conflictsDetected.WithLabelValues("single").Add(float64(single))
	m.conflictsDetected.WithLabelValues("shared").Add(float64(shared))
}

// RecordWorkloadWarnings counts reported workload warnings.
func (m *MetricsService) RecordWorkloadWarnings(professor, subject int) {
	if m == nil {
		return
	}
	m.workloadWarnings.WithLabelValues("professor").Add(float64(professor))
	m.workloadWarnings.WithLabelValues("subject").Add(float64(subject))
}

// RecordInvalidTemplates counts templates skipped during expansion.
func (m *MetricsService) RecordInvalidTemplates(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.invalidTemplates.Add(float64(n))
}

// ObserveOccurrences records how many occurrences one query built.
func (m *MetricsService) ObserveOccurrences(n int) {
	if m == nil {
		return
	}
	m.occurrencesExpanded.Observe(float64(n))
}

// Snapshot returns aggregated metrics for the system metrics endpoint.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	dbCount := atomic.LoadUint64(&m.dbQueryCount)
	dbDuration := atomic.LoadUint64(&m.dbQueryDurationTotal)

	var cacheRatio float64
	if lookups := hits + misses; lookups > 0 {
		cacheRatio = float64(hits) / float64(lookups)
	}

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	var avgDBMs float64
	if dbCount > 0 {
		avgDBMs = float64(dbDuration) / float64(dbCount) / float64(time.Millisecond)
	}

	return models.SystemMetrics{
		CacheHitRatio:            cacheRatio,
		CacheHits:                hits,
		CacheMisses:              misses,
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		DBQueryCount:             dbCount,
		AverageDBQueryDurationMs: avgDBMs,
		ConflictQueries:          atomic.LoadUint64(&m.conflictQueryCount),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
