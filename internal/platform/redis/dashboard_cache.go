// Package redis provides the analytics dashboard cache.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"taskboard/internal/metrics"
	"taskboard/internal/store"
)

const (
	dashboardKeyPrefix = "analytics:dashboard:"

	// DashboardTTL bounds dashboard staleness. Stale reads inside this window
	// are accepted; there is no invalidation on write.
	DashboardTTL = 5 * time.Minute
)

// DashboardCache stores per-user dashboard aggregates in Redis with a fixed
// TTL. All failures degrade to a cache miss; the caller recomputes.
type DashboardCache struct {
	rdb goredis.Cmdable
}

// NewDashboardCache creates a dashboard cache on the given Redis client.
func NewDashboardCache(rdb goredis.Cmdable) *DashboardCache {
	return &DashboardCache{rdb: rdb}
}

// Get returns the cached aggregate for userID, or (nil, false) on a miss.
func (c *DashboardCache) Get(ctx context.Context, userID uuid.UUID) (*store.DashboardStats, bool) {
	key := dashboardKeyPrefix + userID.String()

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			slog.Warn("dashboard cache GET failed, treating as miss",
				"user_id", userID, "error", err)
		}
		metrics.DashboardCacheMisses.Inc()
		return nil, false
	}

	var stats store.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		slog.Warn("failed to unmarshal cached dashboard, treating as miss",
			"user_id", userID, "error", err)
		metrics.DashboardCacheMisses.Inc()
		return nil, false
	}

	metrics.DashboardCacheHits.Inc()
	return &stats, true
}

// Set stores the aggregate for userID with the fixed TTL. Best-effort: a
// failed write only means the next read recomputes.
func (c *DashboardCache) Set(ctx context.Context, userID uuid.UUID, stats *store.DashboardStats) {
	encoded, err := json.Marshal(stats)
	if err != nil {
		slog.Warn("failed to marshal dashboard for cache", "user_id", userID, "error", err)
		return
	}
	key := dashboardKeyPrefix + userID.String()
	if err := c.rdb.Set(ctx, key, encoded, DashboardTTL).Err(); err != nil {
		slog.Warn("failed to populate dashboard cache", "user_id", userID, "error", err)
	}
}
