package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/domain"
)

// TaskFilter narrows and pages task listings. Zero values mean "no filter".
type TaskFilter struct {
	Status    domain.TaskStatus
	Priority  domain.TaskPriority
	ProjectID *uuid.UUID
	// Search matches the title, case-insensitively.
	Search string
	// Overdue restricts to tasks whose due date is before Now and whose
	// status is neither completed nor cancelled.
	Overdue bool
	// Now anchors the overdue predicate; callers inject it for testability.
	Now     time.Time
	Page    int
	PerPage int
}

// TaskStore defines task persistence. All operations are scoped to the owning
// user: a task another user owns behaves as if it did not exist.
type TaskStore interface {
	// Create saves a new task and its tag associations.
	// Returns ErrInvalidEntity if the referenced project or user is absent.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID returns the task with tags loaded.
	// Returns ErrTaskNotFound if absent or owned by a different user.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error)

	// List returns one page of the user's tasks matching filter, ordered by
	// creation time descending, along with the total match count.
	List(ctx context.Context, userID uuid.UUID, filter TaskFilter) ([]*domain.Task, int, error)

	// Update persists field changes and replaces tag associations.
	// Returns ErrTaskNotFound if absent or owned by a different user.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task and its tag links and comments.
	// Returns ErrTaskNotFound if absent or owned by a different user.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
