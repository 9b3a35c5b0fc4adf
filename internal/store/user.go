package store

import (
	"context"

	"github.com/google/uuid"

	"taskboard/internal/domain"
)

// UserFilter narrows List results.
type UserFilter struct {
	// Search matches against email, first name and last name, case-insensitively.
	Search  string
	Page    int
	PerPage int
}

// UserStore defines user persistence.
type UserStore interface {
	// Create saves a new user. The user must already carry a hashed password.
	// Returns ErrEmailExists if the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns a page of users ordered by creation time, newest first.
	List(ctx context.Context, filter UserFilter) ([]*domain.User, int, error)

	// Update persists profile changes. Returns ErrUserNotFound if absent,
	// ErrEmailExists when changing to a taken email.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user and, via the schema's cascading foreign keys,
	// everything the user owns. Returns ErrUserNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}
