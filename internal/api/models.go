package api

import (
	"time"

	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name"  validate:"max=100"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UpdateProfileRequest defines the payload for the profile update endpoint.
// Omitted fields keep their current value.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name"  validate:"omitempty,max=100"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url,max=500"`
}

// CreateProjectRequest defines the payload for creating a project.
type CreateProjectRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Color       string `json:"color"       validate:"omitempty,hexcolor"`
}

// UpdateProjectRequest defines the payload for updating a project. Omitted
// fields keep their current value.
type UpdateProjectRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Color       *string `json:"color"       validate:"omitempty,hexcolor"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,min=1,max=255"`
	Description string     `json:"description" validate:"max=5000"`
	ProjectID   *uuid.UUID `json:"project_id"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time `json:"due_date"`
	Tags        []string   `json:"tags"        validate:"max=20,dive,min=1,max=50"`
}

// UpdateTaskRequest defines the payload for updating a task. Omitted fields
// keep their current value; an explicit null clears project and due date.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	ProjectID   *uuid.UUID `json:"project_id"`
	Status      *string    `json:"status"      validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Priority    *string    `json:"priority"    validate:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time `json:"due_date"`
	Tags        *[]string  `json:"tags"        validate:"omitempty,max=20,dive,min=1,max=50"`

	// ClearProject and ClearDueDate distinguish "leave unchanged" from
	// "set to null" for the two nullable fields.
	ClearProject bool `json:"clear_project"`
	ClearDueDate bool `json:"clear_due_date"`
}

// CreateTagRequest defines the payload for creating a tag.
type CreateTagRequest struct {
	Name  string `json:"name"  validate:"required,min=1,max=50"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// CreateCommentRequest defines the payload for commenting on a task.
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

// MutationResponse is the envelope for successful mutations: a human-readable
// message plus the affected resource under its own key.
type MutationResponse map[string]interface{}

// NewMutationResponse builds the standard mutation envelope.
func NewMutationResponse(message, resourceKey string, resource interface{}) MutationResponse {
	return MutationResponse{
		"message":   message,
		resourceKey: resource,
	}
}

// ListResponse is the envelope for paginated listings: the page of resources
// under resourceKey plus pagination bookkeeping.
type ListResponse map[string]interface{}

// NewListResponse builds the standard list envelope. pages is derived from
// total and perPage, with a minimum of one page.
func NewListResponse(resourceKey string, resources interface{}, total, page, perPage int) ListResponse {
	pages := 1
	if perPage > 0 {
		pages = (total + perPage - 1) / perPage
		if pages < 1 {
			pages = 1
		}
	}
	return ListResponse{
		resourceKey:    resources,
		"total":        total,
		"pages":        pages,
		"current_page": page,
	}
}
