package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/domain"
	"taskboard/internal/platform/logger"
	"taskboard/internal/store"
)

// ProjectStore implements store.ProjectStore against PostgreSQL. It holds a
// *sql.DB rather than a DBTX because Delete runs a multi-statement cascade in
// its own transaction.
type ProjectStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewProjectStore creates a PostgreSQL-backed project store.
func NewProjectStore(db *sql.DB, log *slog.Logger) *ProjectStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ProjectStore{
		db:     db,
		logger: log.With(slog.String("component", "project_store")),
	}
}

var _ store.ProjectStore = (*ProjectStore)(nil)

// Create implements store.ProjectStore.Create.
func (s *ProjectStore) Create(ctx context.Context, project *domain.Project) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := project.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO projects (id, owner_id, name, description, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		project.ID,
		project.OwnerID,
		project.Name,
		project.Description,
		project.Color,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: owner %s not found", store.ErrInvalidEntity, project.OwnerID)
		}
		log.Error("failed to create project",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return err
	}

	log.Info("project created",
		slog.String("project_id", project.ID.String()),
		slog.String("owner_id", project.OwnerID.String()))
	return nil
}

const projectColumns = `id, owner_id, name, description, color, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Description,
		&p.Color,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID implements store.ProjectStore.GetByID.
func (s *ProjectStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND owner_id = $2`
	project, err := scanProject(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

// List implements store.ProjectStore.List.
func (s *ProjectStore) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE owner_id = $1 ORDER BY name`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []*domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// Update implements store.ProjectStore.Update.
func (s *ProjectStore) Update(ctx context.Context, project *domain.Project) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := project.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	project.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE projects
		SET name = $1, description = $2, color = $3, updated_at = $4
		WHERE id = $5 AND owner_id = $6
	`
	result, err := s.db.ExecContext(ctx, query,
		project.Name,
		project.Description,
		project.Color,
		project.UpdatedAt,
		project.ID,
		project.OwnerID,
	)
	if err != nil {
		log.Error("failed to update project",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrProjectNotFound
	}
	return nil
}

// Delete implements store.ProjectStore.Delete. The cascade to the project's
// tasks, their tag links and their comments runs in one transaction: either
// the project and all dependents disappear together or nothing changes.
func (s *ProjectStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	statements := []string{
		`DELETE FROM comments WHERE task_id IN (SELECT id FROM tasks WHERE project_id = $1)`,
		`DELETE FROM task_tags WHERE task_id IN (SELECT id FROM tasks WHERE project_id = $1)`,
		`DELETE FROM tasks WHERE project_id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			log.Error("failed to cascade project delete",
				slog.String("error", err.Error()),
				slog.String("project_id", id.String()))
			return err
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		log.Error("failed to delete project",
			slog.String("error", err.Error()),
			slog.String("project_id", id.String()))
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Rolling back also undoes the task deletes above, which may have
		// touched rows when the project exists but belongs to someone else.
		return store.ErrProjectNotFound
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("project deleted",
		slog.String("project_id", id.String()),
		slog.String("owner_id", ownerID.String()))
	return nil
}
