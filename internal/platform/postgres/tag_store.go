package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"taskboard/internal/domain"
	"taskboard/internal/platform/logger"
	"taskboard/internal/store"
)

// TagStore implements store.TagStore against PostgreSQL.
type TagStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewTagStore creates a PostgreSQL-backed tag store.
func NewTagStore(db *sql.DB, log *slog.Logger) *TagStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &TagStore{
		db:     db,
		logger: log.With(slog.String("component", "tag_store")),
	}
}

var _ store.TagStore = (*TagStore)(nil)

// Create implements store.TagStore.Create.
func (s *TagStore) Create(ctx context.Context, tag *domain.Tag) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tag.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `INSERT INTO tags (id, name, color, created_at) VALUES ($1, $2, $3, $4)`
	_, err := s.db.ExecContext(ctx, query, tag.ID, tag.Name, tag.Color, tag.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrTagNameExists
		}
		log.Error("failed to create tag",
			slog.String("error", err.Error()),
			slog.String("tag", tag.Name))
		return err
	}
	return nil
}

// GetByName implements store.TagStore.GetByName.
func (s *TagStore) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	var tag domain.Tag
	query := `SELECT id, name, color, created_at FROM tags WHERE name = $1`
	err := s.db.QueryRowContext(ctx, query, name).Scan(&tag.ID, &tag.Name, &tag.Color, &tag.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// List implements store.TagStore.List.
func (s *TagStore) List(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color, created_at FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Color, &tag.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	return tags, rows.Err()
}

// Delete implements store.TagStore.Delete. Task associations are removed
// first so the tag row never leaves dangling links.
func (s *TagStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM task_tags WHERE tag_id = $1`, id); err != nil {
		log.Error("failed to delete tag links",
			slog.String("error", err.Error()),
			slog.String("tag_id", id.String()))
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete tag",
			slog.String("error", err.Error()),
			slog.String("tag_id", id.String()))
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrTagNotFound
	}

	return tx.Commit()
}
