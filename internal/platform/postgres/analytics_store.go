package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/domain"
	"taskboard/internal/platform/logger"
	"taskboard/internal/store"
)

// AnalyticsStore implements store.AnalyticsStore against PostgreSQL.
type AnalyticsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAnalyticsStore creates a PostgreSQL-backed analytics store.
func NewAnalyticsStore(db store.DBTX, log *slog.Logger) *AnalyticsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &AnalyticsStore{
		db:     db,
		logger: log.With(slog.String("component", "analytics_store")),
	}
}

var _ store.AnalyticsStore = (*AnalyticsStore)(nil)

// Dashboard implements store.AnalyticsStore.Dashboard.
func (s *AnalyticsStore) Dashboard(ctx context.Context, userID uuid.UUID, now time.Time) (*store.DashboardStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	stats := &store.DashboardStats{
		StatusDistribution:   map[domain.TaskStatus]int{},
		PriorityDistribution: map[domain.TaskPriority]int{},
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM tasks WHERE user_id = $1 GROUP BY status`, userID)
	if err != nil {
		log.Error("failed to aggregate status counts", slog.String("error", err.Error()))
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.StatusDistribution[domain.TaskStatus(status)] = count
		stats.TotalTasks += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prioRows, err := s.db.QueryContext(ctx,
		`SELECT priority, COUNT(*) FROM tasks WHERE user_id = $1 GROUP BY priority`, userID)
	if err != nil {
		log.Error("failed to aggregate priority counts", slog.String("error", err.Error()))
		return nil, err
	}
	defer prioRows.Close()
	for prioRows.Next() {
		var priority string
		var count int
		if err := prioRows.Scan(&priority, &count); err != nil {
			return nil, err
		}
		stats.PriorityDistribution[domain.TaskPriority(priority)] = count
	}
	if err := prioRows.Err(); err != nil {
		return nil, err
	}

	weekAgo := now.Add(-7 * 24 * time.Hour)
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM tasks
		WHERE user_id = $1 AND status = 'completed' AND completed_at >= $2
	`, userID, weekAgo).Scan(&stats.CompletedThisWeek)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM tasks
		WHERE user_id = $1 AND due_date < $2 AND status NOT IN ('completed', 'cancelled')
	`, userID, now).Scan(&stats.OverdueTasks)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// DailyCompleted implements store.AnalyticsStore.DailyCompleted.
func (s *AnalyticsStore) DailyCompleted(ctx context.Context, userID uuid.UUID, since time.Time) ([]store.DailyCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT TO_CHAR(DATE(completed_at), 'YYYY-MM-DD'), COUNT(*)
		FROM tasks
		WHERE user_id = $1 AND status = 'completed' AND completed_at >= $2
		GROUP BY DATE(completed_at)
		ORDER BY DATE(completed_at)
	`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []store.DailyCount{}
	for rows.Next() {
		var dc store.DailyCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, dc)
	}
	return counts, rows.Err()
}
