package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"taskboard/internal/store"
)

// productivityWindowDays is the size of the look-back window for the
// productivity series.
const productivityWindowDays = 30

// DashboardCache caches per-user dashboard aggregates. Get reports a miss on
// any failure; Set is best-effort.
type DashboardCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*store.DashboardStats, bool)
	Set(ctx context.Context, userID uuid.UUID, stats *store.DashboardStats)
}

// AnalyticsService serves the dashboard aggregate and the productivity series.
type AnalyticsService interface {
	// Dashboard returns the user's aggregate, cache-aside: a cached value is
	// served as-is even if the underlying data changed after it was stored.
	Dashboard(ctx context.Context, userID uuid.UUID) (*store.DashboardStats, error)

	// Productivity returns the user's daily completed-task counts over the
	// last thirty days. Always computed fresh.
	Productivity(ctx context.Context, userID uuid.UUID) ([]store.DailyCount, error)
}

// AnalyticsServiceImpl implements the AnalyticsService interface.
type AnalyticsServiceImpl struct {
	analyticsStore store.AnalyticsStore
	cache          DashboardCache
	clock          clockwork.Clock
	logger         *slog.Logger
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(
	analyticsStore store.AnalyticsStore,
	cache DashboardCache,
	clock clockwork.Clock,
	logger *slog.Logger,
) *AnalyticsServiceImpl {
	return &AnalyticsServiceImpl{
		analyticsStore: analyticsStore,
		cache:          cache,
		clock:          clock,
		logger:         logger.With("component", "analytics_service"),
	}
}

// Dashboard returns the user's aggregate, consulting the cache first.
func (s *AnalyticsServiceImpl) Dashboard(ctx context.Context, userID uuid.UUID) (*store.DashboardStats, error) {
	if stats, ok := s.cache.Get(ctx, userID); ok {
		return stats, nil
	}

	now := s.clock.Now().UTC()
	stats, err := s.analyticsStore.Dashboard(ctx, userID, now)
	if err != nil {
		s.logger.Error("failed to compute dashboard", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to compute dashboard: %w", err)
	}

	s.cache.Set(ctx, userID, stats)
	return stats, nil
}

// Productivity returns the user's daily completed-task counts over the last
// thirty days.
func (s *AnalyticsServiceImpl) Productivity(ctx context.Context, userID uuid.UUID) ([]store.DailyCount, error) {
	since := s.clock.Now().UTC().AddDate(0, 0, -productivityWindowDays)
	counts, err := s.analyticsStore.DailyCompleted(ctx, userID, since)
	if err != nil {
		s.logger.Error("failed to compute productivity series", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to compute productivity series: %w", err)
	}
	return counts, nil
}
