package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/domain"
)

// DashboardStats is the per-user aggregate served by the analytics endpoint.
type DashboardStats struct {
	TotalTasks           int                         `json:"total_tasks"`
	CompletedThisWeek    int                         `json:"completed_this_week"`
	OverdueTasks         int                         `json:"overdue_tasks"`
	StatusDistribution   map[domain.TaskStatus]int   `json:"status_distribution"`
	PriorityDistribution map[domain.TaskPriority]int `json:"priority_distribution"`
}

// DailyCount is one day's completed-task count in the productivity series.
type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// AnalyticsStore aggregates task counts for one user.
type AnalyticsStore interface {
	// Dashboard computes the dashboard aggregate as of now.
	Dashboard(ctx context.Context, userID uuid.UUID, now time.Time) (*DashboardStats, error)

	// DailyCompleted returns per-day completed-task counts for the window
	// [since, now], days with zero completions omitted.
	DailyCompleted(ctx context.Context, userID uuid.UUID, since time.Time) ([]DailyCount, error)
}
