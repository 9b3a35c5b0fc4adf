// Package metrics defines the Prometheus instrumentation for the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Live-update metrics.
var (
	// ActiveConnections tracks currently registered live-update channels.
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "taskboard_active_connections",
			Help: "Number of currently registered live-update channels",
		},
	)

	// BroadcastsTotal counts broadcast calls.
	BroadcastsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "taskboard_broadcasts_total",
			Help: "Total number of event broadcasts",
		},
	)

	// DeliveryFailures counts per-channel delivery failures during broadcast.
	DeliveryFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "taskboard_delivery_failures_total",
			Help: "Total number of failed event deliveries to live-update channels",
		},
	)
)

// Analytics cache metrics.
var (
	// DashboardCacheHits counts dashboard reads served from Redis.
	DashboardCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "taskboard_dashboard_cache_hits_total",
			Help: "Dashboard requests served from the Redis cache",
		},
	)

	// DashboardCacheMisses counts dashboard reads that recomputed the aggregate.
	DashboardCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "taskboard_dashboard_cache_misses_total",
			Help: "Dashboard requests that fell through to PostgreSQL",
		},
	)
)
