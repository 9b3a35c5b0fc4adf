// Package service provides application-level services for users, tasks and
// analytics, sitting between the HTTP handlers and the stores.
package service

import "errors"

// Common service errors. Service methods return sentinel errors for expected
// conditions; callers check them with errors.Is and the API layer maps them
// to HTTP status codes.
var (
	// ErrInvalidCredentials indicates an unknown email or a wrong password.
	// The two cases are deliberately indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountDisabled indicates the account exists but has been deactivated.
	ErrAccountDisabled = errors.New("account is disabled")
)
