package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a note left by a user on a task.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	TaskID    uuid.UUID `json:"task_id"`
	UserID    uuid.UUID `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewComment creates a Comment by userID on taskID and validates it.
func NewComment(taskID, userID uuid.UUID, text string) (*Comment, error) {
	now := time.Now().UTC()
	comment := &Comment{
		ID:        uuid.New(),
		TaskID:    taskID,
		UserID:    userID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := comment.Validate(); err != nil {
		return nil, err
	}
	return comment, nil
}

// Validate checks the comment's fields.
func (c *Comment) Validate() error {
	if c.ID == uuid.Nil || c.TaskID == uuid.Nil || c.UserID == uuid.Nil {
		return ErrEmptyID
	}
	if c.Text == "" {
		return ErrEmptyCommentText
	}
	return nil
}
