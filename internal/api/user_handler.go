package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/nverra/storefront-api/internal/api/shared"
	"github.com/nverra/storefront-api/internal/redact"
	"github.com/nverra/storefront-api/internal/service/auth"
	"github.com/nverra/storefront-api/internal/store"
)

// UserHandler handles user management API requests.
type UserHandler struct {
	userStore      store.UserStore
	passwordHasher auth.PasswordHasher
	validator      *validator.Validate
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userStore store.UserStore, passwordHasher auth.PasswordHasher) *UserHandler {
	return &UserHandler{
		userStore:      userStore,
		passwordHasher: passwordHasher,
		validator:      validator.New(),
	}
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userStore.List(r.Context())
	if err != nil {
		slog.Error("failed to list users", "error", redact.Error(err))
		shared.RespondWithError(
			w, r, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, users)
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	user, err := h.userStore.GetByID(r.Context(), id)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, user)
}

// Update handles PUT /users/{id}. Absent fields keep their stored values;
// a supplied password is re-hashed before storage.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	var req UpdateUserRequest

	// Parse request
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// Validate request
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithFieldErrors(
			w, r, http.StatusBadRequest, "Validation error", ValidationFieldErrors(err))
		return
	}

	// Merge over the current record
	user, err := h.userStore.GetByID(r.Context(), id)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if req.Street != nil {
		user.Street = *req.Street
	}
	if req.Apartment != nil {
		user.Apartment = *req.Apartment
	}
	if req.Zip != nil {
		user.Zip = *req.Zip
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.Country != nil {
		user.Country = *req.Country
	}

	if req.Password != nil {
		hashedPassword, err := h.passwordHasher.Hash(*req.Password)
		if err != nil {
			slog.Error("failed to hash password",
				"error", redact.Error(err), "user_id", id)
			shared.RespondWithError(
				w, r, http.StatusInternalServerError, "Failed to update user")
			return
		}
		user.PasswordHash = hashedPassword
	}

	if err := user.Validate(); err != nil {
		HandleError(w, r, err)
		return
	}

	if err := h.userStore.Update(r.Context(), user); err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, user)
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if err := h.userStore.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrReferenced) {
			shared.RespondWithError(
				w, r, http.StatusBadRequest, "The user still has orders and cannot be deleted")
			return
		}
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, DeleteResponse{
		Message: "The user is deleted!",
	})
}

// Count handles GET /users/get/count.
func (h *UserHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.userStore.Count(r.Context())
	if err != nil {
		slog.Error("failed to count users", "error", redact.Error(err))
		shared.RespondWithError(
			w, r, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, UserCountResponse{UserCount: count})
}
