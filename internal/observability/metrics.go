package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ripple_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// FeedPagesServed counts feed partitions computed, labeled by slice emptiness
	// to spot users with empty networks.
	FeedPagesServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_feed_pages_served_total",
		Help: "Total number of feed pages computed",
	}, []string{"slice"})

	// RevalidationsPublished counts view-invalidation signals by view name.
	RevalidationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_revalidations_published_total",
		Help: "Total number of view revalidation signals published",
	}, []string{"view"})

	// MessagesSent counts direct messages created.
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_messages_sent_total",
		Help: "Total number of direct messages created",
	})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
