package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nverra/storefront-api/internal/domain"
	"github.com/nverra/storefront-api/internal/service/auth"
	"github.com/nverra/storefront-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid token", err: auth.ErrInvalidToken, want: http.StatusUnauthorized},
		{name: "expired token", err: auth.ErrExpiredToken, want: http.StatusUnauthorized},
		{name: "unauthorized", err: domain.ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "user not found", err: store.ErrUserNotFound, want: http.StatusNotFound},
		{name: "product not found", err: store.ErrProductNotFound, want: http.StatusNotFound},
		{name: "order not found", err: store.ErrOrderNotFound, want: http.StatusNotFound},
		{name: "category not found", err: store.ErrCategoryNotFound, want: http.StatusNotFound},
		{name: "email exists", err: store.ErrEmailExists, want: http.StatusConflict},
		{name: "invalid reference", err: store.ErrInvalidEntity, want: http.StatusBadRequest},
		{name: "still referenced", err: store.ErrReferenced, want: http.StatusBadRequest},
		{name: "stock out of range", err: domain.ErrStockOutOfRange, want: http.StatusBadRequest},
		{name: "invalid id", err: domain.ErrInvalidID, want: http.StatusBadRequest},
		{name: "empty product name", err: domain.ErrEmptyProductName, want: http.StatusBadRequest},
		{name: "unknown error", err: errors.New("boom"), want: http.StatusInternalServerError},
		{
			name: "wrapped not found",
			err:  fmt.Errorf("loading product: %w", store.ErrProductNotFound),
			want: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "user not found", err: store.ErrUserNotFound, want: "User not found"},
		{name: "category not found", err: store.ErrCategoryNotFound, want: "Category not found."},
		{name: "product not found", err: store.ErrProductNotFound, want: "Product not found"},
		{name: "order not found", err: store.ErrOrderNotFound, want: "Order not found"},
		{name: "email exists", err: store.ErrEmailExists, want: "Email already exists"},
		{name: "expired token", err: auth.ErrExpiredToken, want: "The user is not authorized"},
		{name: "nil error", err: nil, want: "Internal Server Error"},
		{
			name: "internal detail never leaks",
			err:  errors.New("pq: connection refused host=10.0.0.5"),
			want: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}
