package store

import (
	"context"

	"github.com/google/uuid"

	"taskboard/internal/domain"
)

// CommentStore defines comment persistence. Access is mediated by task
// ownership: callers resolve the task through TaskStore first.
type CommentStore interface {
	// Create saves a new comment.
	// Returns ErrInvalidEntity if the referenced task or user is absent.
	Create(ctx context.Context, comment *domain.Comment) error

	// ListByTask returns a task's comments ordered by creation time ascending.
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.Comment, error)

	// Delete removes a comment authored by userID.
	// Returns ErrCommentNotFound if absent or authored by someone else.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
