package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tag labels tasks across projects. Names are unique application-wide.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTag creates a Tag with a normalized (trimmed, lowercased) name.
func NewTag(name, color string) (*Tag, error) {
	if color == "" {
		color = DefaultColor
	}
	tag := &Tag{
		ID:        uuid.New(),
		Name:      strings.ToLower(strings.TrimSpace(name)),
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}
	if err := tag.Validate(); err != nil {
		return nil, err
	}
	return tag, nil
}

// Validate checks the tag's fields.
func (t *Tag) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyID
	}
	if t.Name == "" {
		return ErrEmptyName
	}
	if !validHexColor(t.Color) {
		return ErrInvalidColor
	}
	return nil
}
