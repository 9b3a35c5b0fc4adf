package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/store"
)

// fakeAnalyticsStore serves a mutable aggregate and counts computations.
type fakeAnalyticsStore struct {
	stats    store.DashboardStats
	daily    []store.DailyCount
	computed int
	sinceArg time.Time
}

func (f *fakeAnalyticsStore) Dashboard(_ context.Context, _ uuid.UUID, _ time.Time) (*store.DashboardStats, error) {
	f.computed++
	snapshot := f.stats
	return &snapshot, nil
}

func (f *fakeAnalyticsStore) DailyCompleted(_ context.Context, _ uuid.UUID, since time.Time) ([]store.DailyCount, error) {
	f.sinceArg = since
	return f.daily, nil
}

// fakeDashboardCache is an in-memory DashboardCache without expiry; entries
// stay until overwritten, which models reads inside the TTL window.
type fakeDashboardCache struct {
	entries map[uuid.UUID]*store.DashboardStats
	sets    int
}

func newFakeDashboardCache() *fakeDashboardCache {
	return &fakeDashboardCache{entries: make(map[uuid.UUID]*store.DashboardStats)}
}

func (f *fakeDashboardCache) Get(_ context.Context, userID uuid.UUID) (*store.DashboardStats, bool) {
	stats, ok := f.entries[userID]
	return stats, ok
}

func (f *fakeDashboardCache) Set(_ context.Context, userID uuid.UUID, stats *store.DashboardStats) {
	f.entries[userID] = stats
	f.sets++
}

func newTestAnalyticsService(st *fakeAnalyticsStore, cache DashboardCache) *AnalyticsServiceImpl {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC))
	return NewAnalyticsService(st, cache, clock, slog.Default())
}

func TestAnalyticsService_DashboardMissComputesAndCaches(t *testing.T) {
	t.Parallel()

	st := &fakeAnalyticsStore{stats: store.DashboardStats{TotalTasks: 7}}
	cache := newFakeDashboardCache()
	svc := newTestAnalyticsService(st, cache)
	userID := uuid.New()

	stats, err := svc.Dashboard(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 7, stats.TotalTasks)
	assert.Equal(t, 1, st.computed)
	assert.Equal(t, 1, cache.sets)
}

func TestAnalyticsService_DashboardServesStaleCachedValue(t *testing.T) {
	t.Parallel()

	st := &fakeAnalyticsStore{stats: store.DashboardStats{TotalTasks: 7}}
	cache := newFakeDashboardCache()
	svc := newTestAnalyticsService(st, cache)
	userID := uuid.New()

	first, err := svc.Dashboard(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, 7, first.TotalTasks)

	// The underlying data changes, but the cached aggregate has not expired.
	st.stats.TotalTasks = 8

	second, err := svc.Dashboard(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 7, second.TotalTasks, "reads within the TTL window serve the cached aggregate")
	assert.Equal(t, 1, st.computed, "no recomputation on a cache hit")
}

func TestAnalyticsService_DashboardIsPerUser(t *testing.T) {
	t.Parallel()

	st := &fakeAnalyticsStore{stats: store.DashboardStats{TotalTasks: 3}}
	cache := newFakeDashboardCache()
	svc := newTestAnalyticsService(st, cache)

	_, err := svc.Dashboard(context.Background(), uuid.New())
	require.NoError(t, err)
	_, err = svc.Dashboard(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 2, st.computed, "distinct users never share cache entries")
}

func TestAnalyticsService_ProductivityWindow(t *testing.T) {
	t.Parallel()

	st := &fakeAnalyticsStore{daily: []store.DailyCount{{Date: "2025-06-14", Count: 2}}}
	svc := newTestAnalyticsService(st, newFakeDashboardCache())

	counts, err := svc.Productivity(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, []store.DailyCount{{Date: "2025-06-14", Count: 2}}, counts)

	wantSince := time.Date(2025, 5, 16, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, wantSince, st.sinceArg, "the series looks back thirty days")
}
