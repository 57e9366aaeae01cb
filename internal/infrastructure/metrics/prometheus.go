package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the crypto price sync client
var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crypto_prices_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crypto_prices_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPResponseSizeBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crypto_prices_http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: []float64{100, 1000, 10000, 100000},
		},
		[]string{"method", "path"},
	)

	// Cache Metrics
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crypto_prices_cache_operations_total",
			Help: "Total number of persisted cache operations",
		},
		[]string{"operation", "result"}, // operation: read/write, result: hit/miss/corrupt/success/error
	)

	CacheRecordBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "crypto_prices_cache_record_bytes",
			Help: "Size in bytes of the last persisted snapshot record",
		},
	)

	// External API Metrics
	ExternalAPIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crypto_prices_external_api_requests_total",
			Help: "Total number of external API requests",
		},
		[]string{"service", "endpoint", "status_code"},
	)

	ExternalAPIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crypto_prices_external_api_request_duration_seconds",
			Help:    "External API request duration in seconds",
			Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
		[]string{"service", "endpoint"},
	)

	CacheConnectRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crypto_prices_cache_connect_retries_total",
			Help: "Total number of cache backend connection retry attempts",
		},
		[]string{"backend", "attempt"},
	)

	// Sync Metrics
	SyncFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crypto_prices_sync_fetches_total",
			Help: "Total number of quote fetches by trigger and result",
		},
		[]string{"trigger", "result"}, // trigger: foreground/silent/user, result: success/error
	)

	SyncFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crypto_prices_sync_fetch_duration_seconds",
			Help:    "Duration of quote fetches as seen by the sync controller",
			Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 15.0},
		},
		[]string{"trigger"},
	)

	SyncRefreshesIgnored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crypto_prices_sync_refreshes_ignored_total",
			Help: "Refresh requests ignored because a fetch was already in flight",
		},
	)

	OfflineStatus = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "crypto_prices_offline",
			Help: "Offline indicator (1=showing cached data after a failed fetch, 0=online)",
		},
	)

	CurrentPrices = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "crypto_prices_current_price_usd",
			Help: "Current displayed price per asset",
		},
		[]string{"asset"},
	)

	CurrentChange24h = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "crypto_prices_change_24h_percent",
			Help: "Current displayed 24h change per asset",
		},
		[]string{"asset"},
	)

	SnapshotAge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "crypto_prices_snapshot_age_seconds",
			Help: "Age of the displayed snapshot in seconds",
		},
	)

	// Rate Limiting Metrics
	RateLimitRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crypto_prices_rate_limit_requests_total",
			Help: "Total number of refresh requests processed by rate limiter",
		},
		[]string{"result"}, // result: allowed/blocked
	)

	// Stream Metrics
	StreamSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "crypto_prices_stream_subscribers",
			Help: "Number of connected websocket stream subscribers",
		},
	)

	// Application Metrics
	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "crypto_prices_application_info",
			Help: "Application information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, path string, statusCode int, duration float64, responseSize int64) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)

	if responseSize > 0 {
		HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordCacheOperation records cache operation metrics
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheRecordSize actualiza el tamaño del último registro escrito
func UpdateCacheRecordSize(bytes int) {
	CacheRecordBytes.Set(float64(bytes))
}

// RecordExternalAPICall records external API call metrics
func RecordExternalAPICall(service, endpoint string, statusCode int, duration float64) {
	ExternalAPIRequestsTotal.WithLabelValues(service, endpoint, strconv.Itoa(statusCode)).Inc()
	ExternalAPIRequestDuration.WithLabelValues(service, endpoint).Observe(duration)
}

// RecordCacheConnectRetry records a retried cache backend connection
func RecordCacheConnectRetry(backend string, attempt int) {
	CacheConnectRetries.WithLabelValues(backend, strconv.Itoa(attempt)).Inc()
}

// RecordSyncFetch registra el resultado de un fetch del controlador
func RecordSyncFetch(trigger string, success bool, duration float64) {
	result := "error"
	if success {
		result = "success"
	}
	SyncFetchesTotal.WithLabelValues(trigger, result).Inc()
	SyncFetchDuration.WithLabelValues(trigger).Observe(duration)
}

// RecordRefreshIgnored cuenta un refresh descartado por fetch en curso
func RecordRefreshIgnored() {
	SyncRefreshesIgnored.Inc()
}

// UpdateOfflineStatus updates the offline gauge
func UpdateOfflineStatus(offline bool) {
	status := 0.0
	if offline {
		status = 1.0
	}
	OfflineStatus.Set(status)
}

// UpdateCurrentQuote updates price and change gauges for one asset
func UpdateCurrentQuote(asset string, price, change24h float64) {
	CurrentPrices.WithLabelValues(asset).Set(price)
	CurrentChange24h.WithLabelValues(asset).Set(change24h)
}

// UpdateSnapshotAge updates snapshot age gauge
func UpdateSnapshotAge(ageSeconds float64) {
	SnapshotAge.Set(ageSeconds)
}

// RecordRateLimitResult records rate limiting results
func RecordRateLimitResult(allowed bool) {
	result := "blocked"
	if allowed {
		result = "allowed"
	}
	RateLimitRequestsTotal.WithLabelValues(result).Inc()
}

// StreamSubscriberConnected / StreamSubscriberDisconnected mantienen el gauge de suscriptores
func StreamSubscriberConnected() {
	StreamSubscribers.Inc()
}

func StreamSubscriberDisconnected() {
	StreamSubscribers.Dec()
}

// SetApplicationInfo sets application information
func SetApplicationInfo(version, goVersion string) {
	ApplicationInfo.WithLabelValues(version, goVersion).Set(1)
}
