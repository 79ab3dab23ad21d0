package store

import (
	"context"

	"github.com/nverra/storefront-api/internal/domain"
)

// ProductFilter restricts a product listing. The zero value matches
// everything.
type ProductFilter struct {
	// CategoryIDs limits the listing to products whose category is in the
	// set. Empty means no category restriction.
	CategoryIDs []int64
}

// SearchFilter describes a product search by term and optional category.
type SearchFilter struct {
	// Term is matched as a case-insensitive substring of the product name
	// or description. Empty means no term restriction.
	Term string

	// CategoryID, when non-nil, limits matches to that category.
	CategoryID *int64
}

// ProductStore defines the interface for product data persistence.
type ProductStore interface {
	// List returns products matching the filter, ordered by ID, with each
	// product's category populated. An empty slice is not an error.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)

	// GetByID retrieves a product by its unique ID with its category
	// populated. Returns ErrProductNotFound if the product does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// Create saves a new product and fills in the generated ID.
	// Returns validation errors from the domain Product if data is invalid.
	// Returns ErrInvalidEntity if the referenced category does not exist.
	Create(ctx context.Context, product *domain.Product) error

	// Update overwrites an existing product's record with the given value.
	// Callers merge partial payloads over the current record first.
	// Returns ErrProductNotFound if the product does not exist.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product by ID.
	// Returns ErrProductNotFound if the product does not exist.
	Delete(ctx context.Context, id int64) error

	// Count returns the total number of products.
	Count(ctx context.Context) (int64, error)

	// ListFeatured returns up to limit featured products ordered by ID.
	// A non-positive limit returns an empty slice.
	ListFeatured(ctx context.Context, limit int) ([]domain.Product, error)

	// Search returns products matching the search filter, ordered by ID.
	// An empty result is not an error; the search endpoint's implicit
	// create on zero matches is the caller's concern.
	Search(ctx context.Context, filter SearchFilter) ([]domain.Product, error)

	// SetGalleryImages replaces a product's gallery URL list and returns
	// the updated product.
	// Returns ErrProductNotFound if the product does not exist.
	SetGalleryImages(ctx context.Context, id int64, urls []string) (*domain.Product, error)
}
