package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "interprep"

// Metrics owns a private prometheus registry. A nil *Metrics is valid and
// records nothing, so packages can take one optionally.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	embedRequests *prometheus.CounterVec
	embedLatency  prometheus.Histogram
	embedCache    *prometheus.CounterVec

	retrievalQueries *prometheus.CounterVec
	retrievalLatency *prometheus.HistogramVec
	indexRebuilds    *prometheus.CounterVec
	indexSize        prometheus.Gauge

	llmRequests *prometheus.CounterVec
	llmLatency  *prometheus.HistogramVec
}

var latencyBuckets = []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30}

// creates a metrics set registered on a fresh registry
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	m.httpLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   latencyBuckets,
	}, []string{"method", "route"})

	m.embedRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "embedding",
		Name:      "requests_total",
		Help:      "Embedding provider batch calls",
	}, []string{"status"})

	m.embedLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "embedding",
		Name:      "request_duration_seconds",
		Help:      "Embedding provider batch latency",
		Buckets:   latencyBuckets,
	})

	m.embedCache = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "embedding",
		Name:      "cache_lookups_total",
		Help:      "Embedding cache lookups by result",
	}, []string{"result"})

	m.retrievalQueries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "retrieval",
		Name:      "queries_total",
		Help:      "Retrieval queries by operation and status",
	}, []string{"op", "status"})

	m.retrievalLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "retrieval",
		Name:      "query_duration_seconds",
		Help:      "Retrieval query latency",
		Buckets:   latencyBuckets,
	}, []string{"op"})

	m.indexRebuilds = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "retrieval",
		Name:      "index_rebuilds_total",
		Help:      "Vector index rebuilds by reason",
	}, []string{"reason"})

	m.indexSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "retrieval",
		Name:      "index_size",
		Help:      "Number of vectors in the published index",
	})

	m.llmRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "llm",
		Name:      "requests_total",
		Help:      "Text generation requests by task and status",
	}, []string{"task", "status"})

	m.llmLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "llm",
		Name:      "request_duration_seconds",
		Help:      "Text generation latency",
		Buckets:   latencyBuckets,
	}, []string{"task"})

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpLatency,
		m.embedRequests, m.embedLatency, m.embedCache,
		m.retrievalQueries, m.retrievalLatency, m.indexRebuilds, m.indexSize,
		m.llmRequests, m.llmLatency,
	)

	return m
}

// exposes the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}

	return m.registry
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}

	m.httpRequests.WithLabelValues(method, route, statusLabel(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) ObserveEmbedding(err error, d time.Duration) {
	if m == nil {
		return
	}

	m.embedRequests.WithLabelValues(result(err)).Inc()
	m.embedLatency.Observe(d.Seconds())
}

func (m *Metrics) CacheLookups(hits, misses int) {
	if m == nil {
		return
	}

	m.embedCache.WithLabelValues("hit").Add(float64(hits))
	m.embedCache.WithLabelValues("miss").Add(float64(misses))
}

func (m *Metrics) ObserveRetrieval(op string, err error, d time.Duration) {
	if m == nil {
		return
	}

	m.retrievalQueries.WithLabelValues(op, result(err)).Inc()
	m.retrievalLatency.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) IndexRebuilt(reason string, size int) {
	if m == nil {
		return
	}

	m.indexRebuilds.WithLabelValues(reason).Inc()
	m.indexSize.Set(float64(size))
}

func (m *Metrics) SetIndexSize(size int) {
	if m == nil {
		return
	}

	m.indexSize.Set(float64(size))
}

func (m *Metrics) ObserveLLM(task string, err error, d time.Duration) {
	if m == nil {
		return
	}

	m.llmRequests.WithLabelValues(task, result(err)).Inc()
	m.llmLatency.WithLabelValues(task).Observe(d.Seconds())
}

func result(err error) string {
	if err != nil {
		return "error"
	}

	return "ok"
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
