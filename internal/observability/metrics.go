package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quizmate_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quizmate_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// FeedFanoutTotal counts live feed events fanned out, by event type.
	FeedFanoutTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quizmate_feed_fanout_total",
		Help: "Total number of feed events published to friend channels",
	}, []string{"event_type"})

	// FeedSnapshotSize observes the number of posts returned per feed read.
	FeedSnapshotSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quizmate_feed_snapshot_posts",
		Help:    "Posts per feed snapshot",
		Buckets: []float64{0, 5, 10, 25, 50, 100, 250},
	})

	// WebSocketConnectionsTotal is the gauge of active WebSocket connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quizmate_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped because a client's
	// send buffer was full or closed.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quizmate_websocket_backpressure_drops_total",
		Help: "Messages dropped due to client backpressure",
	}, []string{"hub", "reason"})

	// MediaUploadBytes observes uploaded attachment sizes by kind.
	MediaUploadBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quizmate_media_upload_bytes",
		Help:    "Uploaded media sizes in bytes",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	}, []string{"kind"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
