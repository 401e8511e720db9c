package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"cgmd/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncTicksTotal(outcome string)
	IncLoginsTotal(result string)
	ObserveVendorRequestDuration(endpoint string, duration time.Duration)
	SetLastReading(valueMgDl float64)
	SetStreamsActive(count int)
}

type MetricsProvider struct {
	requestsTotal         *prometheus.CounterVec
	requestDuration       *prometheus.HistogramVec
	cacheHits             prometheus.Counter
	cacheMisses           prometheus.Counter
	ticksTotal            *prometheus.CounterVec
	loginsTotal           *prometheus.CounterVec
	vendorRequestDuration *prometheus.HistogramVec
	lastReading           prometheus.Gauge
	streamsActive         prometheus.Gauge
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

func (m *MetricsProvider) IncTicksTotal(outcome string) {
	m.ticksTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) IncLoginsTotal(result string) {
	m.loginsTotal.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) ObserveVendorRequestDuration(endpoint string, duration time.Duration) {
	m.vendorRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) SetLastReading(valueMgDl float64) {
	m.lastReading.Set(valueMgDl)
}

func (m *MetricsProvider) SetStreamsActive(count int) {
	m.streamsActive.Set(float64(count))
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

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cgmd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cgmd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cgmd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cgmd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		ticksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cgmd_poll_ticks_total",
			Help: "Total number of poll ticks by outcome",
		}, []string{"outcome"}),

		loginsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cgmd_logins_total",
			Help: "Total number of vendor login attempts by result",
		}, []string{"result"}),

		vendorRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cgmd_vendor_request_duration_seconds",
			Help:    "Vendor API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		lastReading: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "cgmd_last_reading_mgdl",
			Help: "Most recently emitted glucose value in mg/dL",
		}),

		streamsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "cgmd_streams_active",
			Help: "Number of active stream subscriptions",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                      {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)      {}
func (n *noopMetrics) IncCacheHits()                                         {}
func (n *noopMetrics) IncCacheMisses()                                       {}
func (n *noopMetrics) IncTicksTotal(_ string)                                {}
func (n *noopMetrics) IncLoginsTotal(_ string)                               {}
func (n *noopMetrics) ObserveVendorRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) SetLastReading(_ float64)                              {}
func (n *noopMetrics) SetStreamsActive(_ int)                                {}
