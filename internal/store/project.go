package store

import (
	"context"

	"github.com/google/uuid"

	"taskboard/internal/domain"
)

// ProjectStore defines project persistence, scoped to the owning user.
type ProjectStore interface {
	// Create saves a new project.
	Create(ctx context.Context, project *domain.Project) error

	// GetByID returns ErrProjectNotFound if absent or owned by another user.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Project, error)

	// List returns all of the owner's projects ordered by name.
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Project, error)

	// Update persists changes. Returns ErrProjectNotFound if absent or owned
	// by another user.
	Update(ctx context.Context, project *domain.Project) error

	// Delete removes the project and cascades to its tasks (and their tag
	// links and comments) within a single transaction, so no orphan rows
	// survive a partial failure. Returns ErrProjectNotFound if absent or
	// owned by another user.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
