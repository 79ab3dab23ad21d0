package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nverra/storefront-api/internal/domain"
	"github.com/nverra/storefront-api/internal/mocks"
)

func newTestAuthHandler() (*AuthHandler, *mocks.MockUserStore) {
	userStore := mocks.NewMockUserStore()
	hasher := mocks.NewMockPasswordHasher()
	jwtService := mocks.NewMockJWTService()
	return NewAuthHandler(userStore, jwtService, hasher, hasher), userStore
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler(recorder, req)
	return recorder
}

func TestRegister(t *testing.T) {
	t.Parallel()

	handler, userStore := newTestAuthHandler()

	tests := []struct {
		name       string
		payload    map[string]any
		wantStatus int
	}{
		{
			name: "valid registration",
			payload: map[string]any{
				"name":     "Alice",
				"email":    "alice@example.com",
				"password": "password123",
				"phone":    "555-0100",
				"city":     "Springfield",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "missing name",
			payload: map[string]any{
				"email":    "bob@example.com",
				"password": "password123",
				"phone":    "555-0100",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "invalid email",
			payload: map[string]any{
				"name":     "Bob",
				"email":    "not-an-email",
				"password": "password123",
				"phone":    "555-0100",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "password too short",
			payload: map[string]any{
				"name":     "Bob",
				"email":    "bob@example.com",
				"password": "short",
				"phone":    "555-0100",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			payload: map[string]any{
				"name":     "Alice Again",
				"email":    "alice@example.com",
				"password": "password123",
				"phone":    "555-0101",
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postJSON(t, handler.Register, "/api/v1/users/register", tt.payload)
			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				assert.NotContains(t, recorder.Body.String(), "passwordHash")
				assert.Len(t, userStore.Users, 1)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	handler, userStore := newTestAuthHandler()

	hashed, err := mocks.NewMockPasswordHasher().Hash("password123")
	require.NoError(t, err)
	user, err := domain.NewUser("Alice", "alice@example.com", "555-0100", hashed)
	require.NoError(t, err)
	require.NoError(t, userStore.Create(context.Background(), user))

	tests := []struct {
		name        string
		email       string
		password    string
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "valid credentials",
			email:      "alice@example.com",
			password:   "password123",
			wantStatus: http.StatusOK,
		},
		{
			name:        "unknown email",
			email:       "nobody@example.com",
			password:    "password123",
			wantStatus:  http.StatusBadRequest,
			wantMessage: "The user not found",
		},
		{
			name:        "wrong password",
			email:       "alice@example.com",
			password:    "wrong-password",
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Password is wrong!",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			recorder := postJSON(t, handler.Login, "/api/v1/users/login", map[string]any{
				"email":    tt.email,
				"password": tt.password,
			})

			assert.Equal(t, tt.wantStatus, recorder.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

			if tt.wantStatus == http.StatusOK {
				data, ok := body["data"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "alice@example.com", data["email"])
				assert.NotEmpty(t, data["token"])
				assert.NotEmpty(t, data["refresh_token"])
				return
			}

			assert.Equal(t, tt.wantMessage, body["message"])
		})
	}
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	handler, userStore := newTestAuthHandler()

	hashed, err := mocks.NewMockPasswordHasher().Hash("password123")
	require.NoError(t, err)
	user, err := domain.NewUser("Alice", "alice@example.com", "555-0100", hashed)
	require.NoError(t, err)
	require.NoError(t, userStore.Create(context.Background(), user))

	jwtService := mocks.NewMockJWTService()
	refreshToken, err := jwtService.GenerateRefreshToken(context.Background(), user.ID, false)
	require.NoError(t, err)
	accessToken, err := jwtService.GenerateToken(context.Background(), user.ID, false)
	require.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		recorder := postJSON(t, handler.RefreshToken, "/api/v1/users/refresh", map[string]any{
			"refresh_token": refreshToken,
		})
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("access token is rejected", func(t *testing.T) {
		recorder := postJSON(t, handler.RefreshToken, "/api/v1/users/refresh", map[string]any{
			"refresh_token": accessToken,
		})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		recorder := postJSON(t, handler.RefreshToken, "/api/v1/users/refresh", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
