package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedling-labs/gratitude-api/internal/service/auth"
)

type stubJWTService struct {
	claims *auth.Claims
	err    error
}

func (s *stubJWTService) GenerateToken(_ context.Context, _ uuid.UUID) (string, error) {
	return "token", nil
}

func (s *stubJWTService) ValidateToken(_ context.Context, _ string) (*auth.Claims, error) {
	return s.claims, s.err
}

func (s *stubJWTService) GenerateRefreshToken(_ context.Context, _ uuid.UUID) (string, error) {
	return "refresh", nil
}

func (s *stubJWTService) ValidateRefreshToken(_ context.Context, _ string) (*auth.Claims, error) {
	return s.claims, s.err
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		authHeader string
		claims     *auth.Claims
		err        error
		wantStatus int
		wantUserID bool
	}{
		{
			name:       "valid token",
			authHeader: "Bearer good-token",
			claims:     &auth.Claims{UserID: userID, TokenType: "access"},
			wantStatus: http.StatusOK,
			wantUserID: true,
		},
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "Basic abc123",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			authHeader: "Bearer stale-token",
			err:        auth.ErrExpiredToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "refresh token used as access token",
			authHeader: "Bearer refresh-token",
			err:        auth.ErrWrongTokenType,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unexpected validation failure",
			authHeader: "Bearer broken",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewAuthMiddleware(&stubJWTService{claims: tc.claims, err: tc.err})

			var gotUserID uuid.UUID
			var sawUserID bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, sawUserID = GetUserID(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/gratitude/today", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()

			m.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantUserID {
				require.True(t, sawUserID)
				assert.Equal(t, userID, gotUserID)
			} else {
				assert.False(t, sawUserID)
			}
		})
	}
}
