package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/nverra/storefront-api/internal/api/shared"
	"github.com/nverra/storefront-api/internal/domain"
	"github.com/nverra/storefront-api/internal/service/auth"
	"github.com/nverra/storefront-api/internal/store"
)

// internalErrorMessage is the only message 5xx responses carry; detail is
// logged server-side.
const internalErrorMessage = "Internal Server Error"

// domainValidationErrors lists the domain sentinels that indicate a bad
// payload rather than a server failure.
var domainValidationErrors = []error{
	domain.ErrValidation,
	domain.ErrInvalidID,
	domain.ErrEmptyUserName,
	domain.ErrEmptyEmail,
	domain.ErrInvalidEmail,
	domain.ErrEmptyPhone,
	domain.ErrEmptyPasswordHash,
	domain.ErrEmptyCategoryName,
	domain.ErrEmptyProductName,
	domain.ErrEmptyProductDescription,
	domain.ErrNegativePrice,
	domain.ErrStockOutOfRange,
	domain.ErrRatingOutOfRange,
	domain.ErrEmptyShippingAddress,
	domain.ErrEmptyOrderCity,
	domain.ErrEmptyOrderZip,
	domain.ErrEmptyOrderCountry,
	domain.ErrEmptyOrderPhone,
	domain.ErrMissingOrderUser,
	domain.ErrInvalidQuantity,
}

func isDomainValidationError(err error) bool {
	for _, sentinel := range domainValidationErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// MapErrorToStatusCode maps internal errors to HTTP status codes.
// This keeps status decisions in one place and prevents leaking internal
// error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, store.ErrReferenced),
		isDomainValidationError(err):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error. Internal detail never reaches the client body.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return internalErrorMessage
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return "The user is not authorized"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrCategoryNotFound):
		return "Category not found."

	case errors.Is(err, store.ErrProductNotFound):
		return "Product not found"

	case errors.Is(err, store.ErrOrderNotFound):
		return "Order not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrReferenced):
		return "The record is still referenced and cannot be deleted"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid reference in request"

	case isDomainValidationError(err):
		return err.Error()

	default:
		return internalErrorMessage
	}
}

// HandleError maps err to a status code and safe message and writes the
// error response, logging full detail for server errors.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	if status >= http.StatusInternalServerError {
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}

	shared.RespondWithError(w, r, status, message)
}

// ValidationFieldErrors converts a validator error into a field→message
// map for 400 responses. Returns nil for non-validator errors.
func ValidationFieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = validationTagMessage(fe.Tag())
	}
	return fields
}

// validationTagMessage maps validator tags to user-facing messages.
func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gt", "gte", "lt", "lte":
		return "out of range"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
