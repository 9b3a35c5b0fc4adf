package store

import (
	"context"

	"github.com/google/uuid"

	"taskboard/internal/domain"
)

// TagStore defines tag persistence. Tags are shared across users; names are
// unique application-wide.
type TagStore interface {
	// Create saves a new tag. Returns ErrTagNameExists on a name collision.
	Create(ctx context.Context, tag *domain.Tag) error

	// GetByName returns ErrTagNotFound if no tag has the given name.
	GetByName(ctx context.Context, name string) (*domain.Tag, error)

	// List returns all tags ordered by name.
	List(ctx context.Context) ([]*domain.Tag, error)

	// Delete removes a tag and its task associations.
	// Returns ErrTagNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}
