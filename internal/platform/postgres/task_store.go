package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/domain"
	"taskboard/internal/platform/logger"
	"taskboard/internal/store"
)

// TaskStore implements store.TaskStore against PostgreSQL. It holds a *sql.DB
// because create/update/delete span the tasks and task_tags tables and run in
// their own transactions.
type TaskStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewTaskStore creates a PostgreSQL-backed task store.
func NewTaskStore(db *sql.DB, log *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: log.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO tasks (id, user_id, project_id, title, description, status, priority, due_date, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = tx.ExecContext(ctx, query,
		task.ID,
		task.UserID,
		task.ProjectID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		task.CompletedAt,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referenced user or project not found", store.ErrInvalidEntity)
		}
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	if err := replaceTaskTags(ctx, tx, task.ID, task.Tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

const taskColumns = `t.id, t.user_id, t.project_id, t.title, t.description, t.status, t.priority, t.due_date, t.completed_at, t.created_at, t.updated_at`

func scanTask(row interface{ Scan(...any) error }) (*domain.Task, error) {
	var t domain.Task
	var status, priority string
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.ProjectID,
		&t.Title,
		&t.Description,
		&status,
		&priority,
		&t.DueDate,
		&t.CompletedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Status = domain.TaskStatus(status)
	t.Priority = domain.TaskPriority(priority)
	return &t, nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *TaskStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t WHERE t.id = $1 AND t.user_id = $2`
	task, err := scanTask(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, err
	}

	if err := s.loadTags(ctx, []*domain.Task{task}); err != nil {
		return nil, err
	}
	return task, nil
}

// buildTaskFilter translates a store.TaskFilter into a WHERE fragment and its
// arguments. The first argument is always the user ID.
func buildTaskFilter(userID uuid.UUID, filter store.TaskFilter) (string, []any) {
	clauses := []string{"t.user_id = $1"}
	args := []any{userID}

	next := func() int { return len(args) + 1 }

	if filter.Status != "" {
		clauses = append(clauses, fmt.Sprintf("t.status = $%d", next()))
		args = append(args, filter.Status)
	}
	if filter.Priority != "" {
		clauses = append(clauses, fmt.Sprintf("t.priority = $%d", next()))
		args = append(args, filter.Priority)
	}
	if filter.ProjectID != nil {
		clauses = append(clauses, fmt.Sprintf("t.project_id = $%d", next()))
		args = append(args, *filter.ProjectID)
	}
	if filter.Search != "" {
		clauses = append(clauses, fmt.Sprintf("t.title ILIKE $%d", next()))
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.Overdue {
		now := filter.Now
		if now.IsZero() {
			now = time.Now().UTC()
		}
		clauses = append(clauses, fmt.Sprintf("t.due_date < $%d AND t.status NOT IN ('completed', 'cancelled')", next()))
		args = append(args, now)
	}

	return strings.Join(clauses, " AND "), args
}

// List implements store.TaskStore.List.
func (s *TaskStore) List(ctx context.Context, userID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	where, args := buildTaskFilter(userID, filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM tasks t WHERE ` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count tasks", slog.String("error", err.Error()))
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM tasks t WHERE %s ORDER BY t.created_at DESC LIMIT $%d OFFSET $%d`,
		taskColumns, where, len(args)+1, len(args)+2)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, 0, err
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := s.loadTags(ctx, tasks); err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// Update implements store.TaskStore.Update.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	task.UpdatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE tasks
		SET project_id = $1, title = $2, description = $3, status = $4, priority = $5,
		    due_date = $6, completed_at = $7, updated_at = $8
		WHERE id = $9 AND user_id = $10
	`
	result, err := tx.ExecContext(ctx, query,
		task.ProjectID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		task.CompletedAt,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referenced project not found", store.ErrInvalidEntity)
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrTaskNotFound
	}

	if err := replaceTaskTags(ctx, tx, task.ID, task.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stmt := range []string{
		`DELETE FROM comments WHERE task_id = $1`,
		`DELETE FROM task_tags WHERE task_id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			log.Error("failed to cascade task delete",
				slog.String("error", err.Error()),
				slog.String("task_id", id.String()))
			return err
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrTaskNotFound
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("task deleted",
		slog.String("task_id", id.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// insertTaskTagSQL must name only columns the task_tags migration defines;
// schema_test.go cross-checks the column list against the DDL.
const insertTaskTagSQL = `INSERT INTO task_tags (task_id, tag_id) VALUES ($1, $2)`

// replaceTaskTags rewrites a task's tag associations inside tx.
func replaceTaskTags(ctx context.Context, tx *sql.Tx, taskID uuid.UUID, tags []domain.Tag) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM task_tags WHERE task_id = $1`, taskID); err != nil {
		return err
	}
	for _, tag := range tags {
		_, err := tx.ExecContext(ctx, insertTaskTagSQL, taskID, tag.ID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: tag %s not found", store.ErrInvalidEntity, tag.ID)
			}
			return err
		}
	}
	return nil
}

// loadTags populates Tags for each task in one query.
func (s *TaskStore) loadTags(ctx context.Context, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.Task, len(tasks))
	ids := make([]any, 0, len(tasks))
	placeholders := make([]string, 0, len(tasks))
	for i, task := range tasks {
		byID[task.ID] = task
		ids = append(ids, task.ID)
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
	}

	query := fmt.Sprintf(`
		SELECT tt.task_id, g.id, g.name, g.color, g.created_at
		FROM task_tags tt
		JOIN tags g ON g.id = tt.tag_id
		WHERE tt.task_id IN (%s)
		ORDER BY g.name
	`, strings.Join(placeholders, ", "))

	rows, err := s.db.QueryContext(ctx, query, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var taskID uuid.UUID
		var tag domain.Tag
		if err := rows.Scan(&taskID, &tag.ID, &tag.Name, &tag.Color, &tag.CreatedAt); err != nil {
			return err
		}
		if task, ok := byID[taskID]; ok {
			task.Tags = append(task.Tags, tag)
		}
	}
	return rows.Err()
}
