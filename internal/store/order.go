package store

import (
	"context"

	"github.com/nverra/storefront-api/internal/domain"
)

// OrderStore defines the interface for order data persistence.
// Order items are created and deleted with their owning order.
type OrderStore interface {
	// List returns all orders ordered by newest first, without items.
	// An empty slice is not an error.
	List(ctx context.Context) ([]domain.Order, error)

	// GetByID retrieves an order by its unique ID including its items.
	// Returns ErrOrderNotFound if the order does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Order, error)

	// Create saves a new order together with its items in one transaction
	// and fills in the generated IDs.
	// Returns validation errors from the domain Order if data is invalid.
	// Returns ErrInvalidEntity if the user or a product does not exist.
	Create(ctx context.Context, order *domain.Order) error

	// Update overwrites an existing order's record with the given value.
	// Items are not touched by Update.
	// Returns ErrOrderNotFound if the order does not exist.
	Update(ctx context.Context, order *domain.Order) error

	// Delete removes an order by ID. Its items are removed with it.
	// Returns ErrOrderNotFound if the order does not exist.
	Delete(ctx context.Context, id int64) error

	// Count returns the total number of orders.
	Count(ctx context.Context) (int64, error)

	// TotalSales returns the sum of all order total prices.
	// Returns 0 when there are no orders.
	TotalSales(ctx context.Context) (float64, error)

	// ListByUser returns all orders placed by the given user, newest first.
	// An empty slice is not an error.
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}
