package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project groups a user's tasks. Deleting a project deletes its tasks.
type Project struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DefaultColor is applied to projects and tags created without one.
const DefaultColor = "#3B82F6"

// NewProject creates a Project owned by ownerID and validates it.
func NewProject(ownerID uuid.UUID, name, description string) (*Project, error) {
	now := time.Now().UTC()
	project := &Project{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Color:       DefaultColor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}
	return project, nil
}

// Validate checks the project's fields.
func (p *Project) Validate() error {
	if p.ID == uuid.Nil || p.OwnerID == uuid.Nil {
		return ErrEmptyID
	}
	if p.Name == "" {
		return ErrEmptyName
	}
	if !validHexColor(p.Color) {
		return ErrInvalidColor
	}
	return nil
}

// validHexColor accepts "#RRGGBB" hex color codes.
func validHexColor(c string) bool {
	if len(c) != 7 || c[0] != '#' {
		return false
	}
	for _, ch := range c[1:] {
		switch {
		case ch >= '0' && ch <= '9':
		case ch >= 'a' && ch <= 'f':
		case ch >= 'A' && ch <= 'F':
		default:
			return false
		}
	}
	return true
}
