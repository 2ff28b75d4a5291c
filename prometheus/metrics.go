package prometheus

import (
	"time"

	"github.com/Guimenn/mobiliai-inventory/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Allocation metrics
	AllocationOperationsCounter prometheus.CounterVec
	AllocationClampedCounter    prometheus.Counter
	LazyRowCreatedCounter       prometheus.Counter
	StoreInventoryGauge         prometheus.GaugeVec
)

// InitMetrics registers all collectors under the configured prefix.
func InitMetrics(cfg *config.MetricsConfig) {
	prefix := cfg.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	AllocationOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_allocation_operations_total",
			Help: "Total number of store inventory allocation operations",
		},
		[]string{"operation"},
	)

	AllocationClampedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_allocation_clamped_total",
			Help: "Total number of allocation requests clamped to the available pool",
		},
	)

	LazyRowCreatedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_lazy_inventory_rows_total",
			Help: "Total number of store inventory rows created lazily on first edit",
		},
	)

	StoreInventoryGauge = *promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_store_inventory_quantity",
			Help: "Current allocated quantity per store and product",
		},
		[]string{"store_id", "product_id"},
	)
}

// TrackDBOperation returns a function that records the duration of a
// database operation when deferred.
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		DbOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
	}
}

// RecordAllocationOperation increments the counter for ledger operations.
func RecordAllocationOperation(operation string) {
	AllocationOperationsCounter.WithLabelValues(operation).Inc()
}
