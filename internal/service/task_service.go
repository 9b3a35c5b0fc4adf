package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"taskboard/internal/domain"
	"taskboard/internal/store"
)

// TaskNotifier receives entity change announcements after a mutation has been
// durably committed. Implementations must be fire-and-forget.
type TaskNotifier interface {
	TaskCreated(task *domain.Task)
	TaskUpdated(task *domain.Task)
	TaskDeleted(taskID uuid.UUID)
}

// CreateTaskParams carries the fields of a task creation request.
type CreateTaskParams struct {
	Title       string
	Description string
	ProjectID   *uuid.UUID
	Priority    domain.TaskPriority
	DueDate     *time.Time
	TagNames    []string
}

// TaskUpdate carries the optional fields of a task update request. Nil
// pointers leave the current value untouched; a nil TagNames keeps the
// existing tag set, an empty non-nil slice clears it.
type TaskUpdate struct {
	Title        *string
	Description  *string
	ProjectID    *uuid.UUID
	ClearProject bool
	Status       *domain.TaskStatus
	Priority     *domain.TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
	TagNames     *[]string
}

// TaskService provides task CRUD with tag resolution and live-update
// notifications.
type TaskService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, params CreateTaskParams) (*domain.Task, error)
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)
	ListTasks(ctx context.Context, userID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, int, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, update TaskUpdate) (*domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskStore    store.TaskStore
	projectStore store.ProjectStore
	tagStore     store.TagStore
	notifier     TaskNotifier
	clock        clockwork.Clock
	logger       *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	taskStore store.TaskStore,
	projectStore store.ProjectStore,
	tagStore store.TagStore,
	notifier TaskNotifier,
	clock clockwork.Clock,
	logger *slog.Logger,
) *TaskServiceImpl {
	return &TaskServiceImpl{
		taskStore:    taskStore,
		projectStore: projectStore,
		tagStore:     tagStore,
		notifier:     notifier,
		clock:        clock,
		logger:       logger.With("component", "task_service"),
	}
}

// CreateTask validates the request, resolves tag names and persists the task.
// The notifier fires only after the store reports success.
func (s *TaskServiceImpl) CreateTask(
	ctx context.Context,
	userID uuid.UUID,
	params CreateTaskParams,
) (*domain.Task, error) {
	task, err := domain.NewTask(userID, params.Title, params.Description)
	if err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}
	if params.Priority != "" {
		task.Priority = params.Priority
	}
	task.DueDate = params.DueDate

	if params.ProjectID != nil {
		if _, err := s.projectStore.GetByID(ctx, userID, *params.ProjectID); err != nil {
			return nil, err
		}
		task.ProjectID = params.ProjectID
	}

	tags, err := s.resolveTags(ctx, params.TagNames)
	if err != nil {
		return nil, err
	}
	task.Tags = tags

	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		s.logger.Error("failed to save task", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	s.logger.Info("task created", "task_id", task.ID, "user_id", userID)
	s.notifier.TaskCreated(task)
	return task, nil
}

// GetTask retrieves one of the user's tasks with tags loaded.
func (s *TaskServiceImpl) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	return s.taskStore.GetByID(ctx, userID, taskID)
}

// ListTasks returns one page of the user's tasks matching filter. The overdue
// predicate is anchored to the service clock.
func (s *TaskServiceImpl) ListTasks(
	ctx context.Context,
	userID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, int, error) {
	if filter.Overdue && filter.Now.IsZero() {
		filter.Now = s.clock.Now().UTC()
	}
	tasks, total, err := s.taskStore.List(ctx, userID, filter)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err, "user_id", userID)
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// UpdateTask applies the non-nil fields of update to the task and persists
// the result. Status changes go through the domain transition so the
// completion timestamp stays consistent.
func (s *TaskServiceImpl) UpdateTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
	update TaskUpdate,
) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.ClearProject {
		task.ProjectID = nil
	} else if update.ProjectID != nil {
		if _, err := s.projectStore.GetByID(ctx, userID, *update.ProjectID); err != nil {
			return nil, err
		}
		task.ProjectID = update.ProjectID
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	if update.ClearDueDate {
		task.DueDate = nil
	} else if update.DueDate != nil {
		task.DueDate = update.DueDate
	}
	if update.Status != nil {
		if err := task.SetStatus(*update.Status, s.clock.Now()); err != nil {
			return nil, err
		}
	}
	if update.TagNames != nil {
		tags, err := s.resolveTags(ctx, *update.TagNames)
		if err != nil {
			return nil, err
		}
		task.Tags = tags
	}
	task.UpdatedAt = s.clock.Now().UTC()

	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		if !store.IsNotFound(err) {
			s.logger.Error("failed to update task", "error", err, "task_id", taskID)
		}
		return nil, err
	}

	s.notifier.TaskUpdated(task)
	return task, nil
}

// DeleteTask removes one of the user's tasks along with its tag links and
// comments.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if err := s.taskStore.Delete(ctx, userID, taskID); err != nil {
		if !store.IsNotFound(err) {
			s.logger.Error("failed to delete task", "error", err, "task_id", taskID)
		}
		return err
	}

	s.logger.Info("task deleted", "task_id", taskID, "user_id", userID)
	s.notifier.TaskDeleted(taskID)
	return nil
}

// resolveTags maps tag names to Tag entities, creating missing ones. A create
// losing the race to a concurrent insert falls back to the winner's row.
func (s *TaskServiceImpl) resolveTags(ctx context.Context, names []string) ([]domain.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}

	tags := make([]domain.Tag, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		tag, err := domain.NewTag(name, "")
		if err != nil {
			return nil, fmt.Errorf("invalid tag %q: %w", name, err)
		}
		if _, ok := seen[tag.Name]; ok {
			continue
		}
		seen[tag.Name] = struct{}{}

		existing, err := s.tagStore.GetByName(ctx, tag.Name)
		switch {
		case err == nil:
			tags = append(tags, *existing)
			continue
		case !errors.Is(err, store.ErrTagNotFound):
			return nil, fmt.Errorf("failed to look up tag: %w", err)
		}

		if err := s.tagStore.Create(ctx, tag); err != nil {
			if errors.Is(err, store.ErrTagNameExists) {
				winner, gerr := s.tagStore.GetByName(ctx, tag.Name)
				if gerr != nil {
					return nil, fmt.Errorf("failed to look up tag: %w", gerr)
				}
				tags = append(tags, *winner)
				continue
			}
			return nil, fmt.Errorf("failed to create tag: %w", err)
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}
