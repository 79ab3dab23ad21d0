package store

import (
	"context"

	"github.com/nverra/storefront-api/internal/domain"
)

// CategoryStore defines the interface for category data persistence.
type CategoryStore interface {
	// List returns all categories ordered by ID.
	// An empty slice is not an error.
	List(ctx context.Context) ([]domain.Category, error)

	// GetByID retrieves a category by its unique ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// Create saves a new category and fills in the generated ID.
	// Returns validation errors from the domain Category if data is invalid.
	Create(ctx context.Context, category *domain.Category) error

	// Update overwrites an existing category's record with the given value.
	// Returns ErrCategoryNotFound if the category does not exist.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category by ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	// Returns ErrReferenced if products still reference the category.
	Delete(ctx context.Context, id int64) error
}
