package store

import (
	"context"

	"github.com/nverra/storefront-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// List returns all users ordered by ID. An empty slice is not an error.
	// Returned users never include anything beyond the stored hash; callers
	// are responsible for not serializing it.
	List(ctx context.Context) ([]domain.User, error)

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create saves a new user and fills in the generated ID.
	// The caller must supply an already-hashed password.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// Update overwrites an existing user's record with the given value.
	// Callers merge partial payloads over the current record first.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email already in use.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrReferenced if the user still owns orders.
	Delete(ctx context.Context, id int64) error

	// Count returns the total number of users.
	Count(ctx context.Context) (int64, error)
}
