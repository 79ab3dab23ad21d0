package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/nverra/storefront-api/internal/api/shared"
	"github.com/nverra/storefront-api/internal/domain"
	"github.com/nverra/storefront-api/internal/redact"
	"github.com/nverra/storefront-api/internal/service/auth"
	"github.com/nverra/storefront-api/internal/store"
)

// Login error messages. The bodies distinguish an unknown account from a
// bad password, and clients depend on the exact wording.
const (
	userNotFoundMessage  = "The user not found"
	wrongPasswordMessage = "Password is wrong!"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore      store.UserStore
	jwtService     auth.JWTService
	passwordHasher auth.PasswordHasher
	passwordVerify auth.PasswordVerifier
	validator      *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordHasher auth.PasswordHasher,
	passwordVerifier auth.PasswordVerifier,
) *AuthHandler {
	return &AuthHandler{
		userStore:      userStore,
		jwtService:     jwtService,
		passwordHasher: passwordHasher,
		passwordVerify: passwordVerifier,
		validator:      validator.New(),
	}
}

// Register handles POST /users/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

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

	// Hash password
	hashedPassword, err := h.passwordHasher.Hash(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", redact.Error(err))
		shared.RespondWithError(
			w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}

	// Build user
	user, err := domain.NewUser(req.Name, req.Email, req.Phone, hashedPassword)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	user.IsAdmin = req.IsAdmin
	user.Street = req.Street
	user.Apartment = req.Apartment
	user.Zip = req.Zip
	user.City = req.City
	user.Country = req.Country

	// Store user
	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		slog.Error("failed to create user",
			"error", redact.Error(err), "email", redact.String(req.Email))
		shared.RespondWithError(
			w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, user)
}

// Login handles POST /users/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

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

	// Get user by email
	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusBadRequest, userNotFoundMessage)
			return
		}
		slog.Error("failed to get user by email",
			"error", redact.Error(err), "email", redact.String(req.Email))
		shared.RespondWithError(
			w, r, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}

	// Verify password
	if err := h.passwordVerify.Compare(user.PasswordHash, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, wrongPasswordMessage)
		return
	}

	// Generate token pair
	token, err := h.jwtService.GenerateToken(r.Context(), user.ID, user.IsAdmin)
	if err != nil {
		slog.Error("failed to generate token",
			"error", redact.Error(err), "user_id", user.ID)
		shared.RespondWithError(
			w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), user.ID, user.IsAdmin)
	if err != nil {
		slog.Error("failed to generate refresh token",
			"error", redact.Error(err), "user_id", user.ID)
		shared.RespondWithError(
			w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, LoginResponse{
		Email:        user.Email,
		Token:        token,
		RefreshToken: refreshToken,
	})
}

// RefreshToken handles POST /users/refresh. It exchanges a valid refresh
// token for a fresh token pair.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest

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

	// Validate refresh token
	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	// Issue a new pair. The admin flag is re-read from the stored user so a
	// demoted admin loses access at the next refresh.
	user, err := h.userStore.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(
				w, r, http.StatusUnauthorized, "The user is not authorized")
			return
		}
		slog.Error("failed to get user for token refresh",
			"error", redact.Error(err), "user_id", claims.UserID)
		shared.RespondWithError(
			w, r, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID, user.IsAdmin)
	if err != nil {
		slog.Error("failed to generate token",
			"error", redact.Error(err), "user_id", user.ID)
		shared.RespondWithError(
			w, r, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), user.ID, user.IsAdmin)
	if err != nil {
		slog.Error("failed to generate refresh token",
			"error", redact.Error(err), "user_id", user.ID)
		shared.RespondWithError(
			w, r, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, RefreshTokenResponse{
		Token:        token,
		RefreshToken: refreshToken,
	})
}
