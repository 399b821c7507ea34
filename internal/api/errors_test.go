package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seedling-labs/gratitude-api/internal/service"
	"github.com/seedling-labs/gratitude-api/internal/service/auth"
	"github.com/seedling-labs/gratitude-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid refresh token", auth.ErrInvalidRefreshToken, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not owned", service.ErrNotOwned, http.StatusForbidden},
		{"memory not found", service.ErrMemoryNotFound, http.StatusNotFound},
		{"voice not found", service.ErrVoiceNotFound, http.StatusNotFound},
		{"no surface today", service.ErrNoSurfaceToday, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"speech unavailable", service.ErrSpeechUnavailable, http.StatusBadGateway},
		{"no entries", service.ErrNoEntries, http.StatusNoContent},
		{"unknown", errors.New("mystery"), http.StatusInternalServerError},
		{"wrapped sentinel", fmt.Errorf("loading: %w", service.ErrMemoryNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"memory not found", service.ErrMemoryNotFound, "Memory not found"},
		{"not owned", service.ErrNotOwned, "You do not own this memory"},
		{"email exists", store.ErrEmailExists, "Email already exists"},
		{"speech unavailable", service.ErrSpeechUnavailable, "Speech synthesis is not available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestGetSafeErrorMessage_NeverEchoesInternalDetail(t *testing.T) {
	err := errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`)
	msg := GetSafeErrorMessage(err)
	assert.NotContains(t, msg, "pq:")
	assert.NotContains(t, msg, "users_email_key")
}
