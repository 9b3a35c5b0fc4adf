// Package domain defines the core business entities and their validation rules.
package domain

import "errors"

// Common validation errors returned by entity constructors and Validate methods.
var (
	ErrEmptyID          = errors.New("ID cannot be empty")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters long")

	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrTitleTooLong      = errors.New("title must be at most 255 characters long")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
	ErrCompletedAtStatus = errors.New("completed_at must be set exactly when status is completed")

	ErrEmptyName        = errors.New("name cannot be empty")
	ErrInvalidColor     = errors.New("color must be a hex code like #3B82F6")
	ErrEmptyCommentText = errors.New("comment text cannot be empty")
)
