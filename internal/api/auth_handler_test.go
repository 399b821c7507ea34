package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedling-labs/gratitude-api/internal/domain"
	"github.com/seedling-labs/gratitude-api/internal/service/auth"
	"github.com/seedling-labs/gratitude-api/internal/store"
)

// mockUserStore implements store.UserStore for handler tests.
type mockUserStore struct {
	users     map[string]*domain.User
	createErr error
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]*domain.User)}
}

func (m *mockUserStore) Create(_ context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.users[user.Email]; ok {
		return store.ErrEmailExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) WithTx(_ *sql.Tx) store.UserStore { return m }

// mockJWTService implements auth.JWTService for handler tests.
type mockJWTService struct {
	token       string
	refresh     string
	validateErr error
	userID      uuid.UUID
}

func (m *mockJWTService) GenerateToken(_ context.Context, _ uuid.UUID) (string, error) {
	return m.token, nil
}

func (m *mockJWTService) ValidateToken(_ context.Context, _ string) (*auth.Claims, error) {
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return &auth.Claims{UserID: m.userID}, nil
}

func (m *mockJWTService) GenerateRefreshToken(_ context.Context, _ uuid.UUID) (string, error) {
	return m.refresh, nil
}

func (m *mockJWTService) ValidateRefreshToken(_ context.Context, _ string) (*auth.Claims, error) {
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return &auth.Claims{UserID: m.userID}, nil
}

// mockVerifier implements auth.PasswordVerifier for handler tests.
type mockVerifier struct {
	err error
}

func (m *mockVerifier) Compare(_, _ string) error { return m.err }

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler(recorder, req)
	return recorder
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		payload    RegisterRequest
		userStore  *mockUserStore
		wantStatus int
	}{
		{
			name:       "valid registration",
			payload:    RegisterRequest{Email: "new@example.com", Password: "averylongpassword"},
			userStore:  newMockUserStore(),
			wantStatus: http.StatusCreated,
		},
		{
			name:       "short password",
			payload:    RegisterRequest{Email: "new@example.com", Password: "short"},
			userStore:  newMockUserStore(),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid email",
			payload:    RegisterRequest{Email: "not-an-email", Password: "averylongpassword"},
			userStore:  newMockUserStore(),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(tt.userStore, &mockJWTService{token: "tok", refresh: "ref"}, &mockVerifier{})
			recorder := postJSON(t, handler.Register, "/auth/register", tt.payload)
			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp AuthResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, "tok", resp.AccessToken)
				assert.Equal(t, "ref", resp.RefreshToken)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userStore := newMockUserStore()
	handler := NewAuthHandler(userStore, &mockJWTService{token: "tok"}, &mockVerifier{})

	payload := RegisterRequest{Email: "taken@example.com", Password: "averylongpassword"}
	first := postJSON(t, handler.Register, "/auth/register", payload)
	require.Equal(t, http.StatusCreated, first.Code)

	second := postJSON(t, handler.Register, "/auth/register", payload)
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestLogin(t *testing.T) {
	userID := uuid.New()
	userStore := newMockUserStore()
	userStore.users["known@example.com"] = &domain.User{
		ID:             userID,
		Email:          "known@example.com",
		HashedPassword: "$2a$10$hash",
	}

	tests := []struct {
		name       string
		payload    LoginRequest
		verifier   *mockVerifier
		wantStatus int
	}{
		{
			name:       "valid credentials",
			payload:    LoginRequest{Email: "known@example.com", Password: "correct"},
			verifier:   &mockVerifier{},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			payload:    LoginRequest{Email: "known@example.com", Password: "wrong"},
			verifier:   &mockVerifier{err: errors.New("mismatch")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown email",
			payload:    LoginRequest{Email: "nobody@example.com", Password: "whatever"},
			verifier:   &mockVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(userStore, &mockJWTService{token: "tok", refresh: "ref"}, tt.verifier)
			recorder := postJSON(t, handler.Login, "/auth/login", tt.payload)
			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusOK {
				var resp AuthResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, userID, resp.UserID)
			}
		})
	}
}

func TestRefreshToken(t *testing.T) {
	userID := uuid.New()

	t.Run("valid refresh token", func(t *testing.T) {
		jwt := &mockJWTService{token: "newtok", refresh: "newref", userID: userID}
		handler := NewAuthHandler(newMockUserStore(), jwt, &mockVerifier{})

		recorder := postJSON(t, handler.RefreshToken, "/auth/refresh", RefreshTokenRequest{RefreshToken: "old"})
		require.Equal(t, http.StatusOK, recorder.Code)

		var resp RefreshTokenResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, "newtok", resp.AccessToken)
		assert.Equal(t, "newref", resp.RefreshToken)
	})

	t.Run("expired refresh token", func(t *testing.T) {
		jwt := &mockJWTService{validateErr: auth.ErrExpiredRefreshToken}
		handler := NewAuthHandler(newMockUserStore(), jwt, &mockVerifier{})

		recorder := postJSON(t, handler.RefreshToken, "/auth/refresh", RefreshTokenRequest{RefreshToken: "stale"})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("missing refresh token", func(t *testing.T) {
		handler := NewAuthHandler(newMockUserStore(), &mockJWTService{}, &mockVerifier{})

		recorder := postJSON(t, handler.RefreshToken, "/auth/refresh", RefreshTokenRequest{})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
