package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskboard/internal/domain"
	"taskboard/internal/service"
	"taskboard/internal/service/auth"
	"taskboard/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want int
	}{
		{auth.ErrExpiredToken, http.StatusUnauthorized},
		{auth.ErrInvalidRefreshToken, http.StatusUnauthorized},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrAccountDisabled, http.StatusForbidden},
		{store.ErrTaskNotFound, http.StatusNotFound},
		{store.ErrProjectNotFound, http.StatusNotFound},
		{store.ErrEmailExists, http.StatusConflict},
		{store.ErrTagNameExists, http.StatusConflict},
		{store.ErrInvalidEntity, http.StatusBadRequest},
		{domain.ErrInvalidStatus, http.StatusBadRequest},
		{domain.ErrTitleTooLong, http.StatusBadRequest},
		{errors.New("mystery"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err), tc.err.Error())
	}
}

func TestMapErrorToStatusCodeUnwrapsChains(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("loading task: %w", store.ErrTaskNotFound)
	assert.Equal(t, http.StatusNotFound, MapErrorToStatusCode(wrapped))
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Task not found", GetSafeErrorMessage(store.ErrTaskNotFound))
	assert.Equal(t, "Email address is already registered", GetSafeErrorMessage(store.ErrEmailExists))

	// Unknown errors must not leak their internals.
	leaky := errors.New("pq: connection to 10.0.0.5 refused")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(leaky))

	// Domain validation messages are safe to surface.
	assert.Equal(t, domain.ErrEmptyTitle.Error(), GetSafeErrorMessage(domain.ErrEmptyTitle))
}
