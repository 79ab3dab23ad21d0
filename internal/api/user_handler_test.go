package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nverra/storefront-api/internal/domain"
	"github.com/nverra/storefront-api/internal/mocks"
)

func newUserRouter(userStore *mocks.MockUserStore) http.Handler {
	handler := NewUserHandler(userStore, mocks.NewMockPasswordHasher())

	r := chi.NewRouter()
	r.Get("/users", handler.List)
	r.Get("/users/get/count", handler.Count)
	r.Get("/users/{id}", handler.Get)
	r.Put("/users/{id}", handler.Update)
	r.Delete("/users/{id}", handler.Delete)
	return r
}

func seedUser(t *testing.T, userStore *mocks.MockUserStore, name, email string) *domain.User {
	t.Helper()

	hashed, err := mocks.NewMockPasswordHasher().Hash("password123")
	require.NoError(t, err)
	user, err := domain.NewUser(name, email, "555-0100", hashed)
	require.NoError(t, err)
	user.City = "Springfield"
	require.NoError(t, userStore.Create(context.Background(), user))
	return user
}

func TestUserList(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	seedUser(t, userStore, "Alice", "alice@example.com")
	seedUser(t, userStore, "Bob", "bob@example.com")
	router := newUserRouter(userStore)

	req := httptest.NewRequest("GET", "/users", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Success bool          `json:"success"`
		Data    []domain.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data, 2)

	// The stored hash never appears anywhere in the response
	assert.NotContains(t, recorder.Body.String(), "hashed:")
	assert.NotContains(t, recorder.Body.String(), "passwordHash")
}

func TestUserGet(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	user := seedUser(t, userStore, "Alice", "alice@example.com")
	router := newUserRouter(userStore)

	t.Run("existing user", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/users/1", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), user.Email)
		assert.NotContains(t, recorder.Body.String(), "hashed:")
	})

	t.Run("unknown user", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/users/999", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "User not found")
	})

	t.Run("non-numeric id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/users/abc", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestUserUpdatePartial(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	user := seedUser(t, userStore, "Alice", "alice@example.com")
	router := newUserRouter(userStore)

	// Only the phone is supplied; everything else must survive untouched
	payload, err := json.Marshal(map[string]any{"phone": "555-0199"})
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/users/1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	updated, err := userStore.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-0199", updated.Phone)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.Equal(t, "Springfield", updated.City)
	assert.Equal(t, user.PasswordHash, updated.PasswordHash)
}

func TestUserUpdateRehashesPassword(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	user := seedUser(t, userStore, "Alice", "alice@example.com")
	router := newUserRouter(userStore)

	payload, err := json.Marshal(map[string]any{"password": "newpassword456"})
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/users/1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	updated, err := userStore.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, user.PasswordHash, updated.PasswordHash)
	assert.Equal(t, "hashed:newpassword456", updated.PasswordHash)
}

func TestUserDelete(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	seedUser(t, userStore, "Alice", "alice@example.com")
	router := newUserRouter(userStore)

	t.Run("existing user", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/users/1", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "The user is deleted!")
	})

	t.Run("nonexistent user yields 404 not 500", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/users/999", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestUserCount(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	seedUser(t, userStore, "Alice", "alice@example.com")
	seedUser(t, userStore, "Bob", "bob@example.com")
	router := newUserRouter(userStore)

	req := httptest.NewRequest("GET", "/users/get/count", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data UserCountResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.Data.UserCount)
}
