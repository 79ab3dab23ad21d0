package mocks

import (
	"context"
	"sort"

	"github.com/nverra/storefront-api/internal/domain"
	"github.com/nverra/storefront-api/internal/store"
)

// MockOrderStore implements store.OrderStore for testing
type MockOrderStore struct {
	// Function fields for customizable behavior
	ListFn       func(ctx context.Context) ([]domain.Order, error)
	GetByIDFn    func(ctx context.Context, id int64) (*domain.Order, error)
	CreateFn     func(ctx context.Context, order *domain.Order) error
	UpdateFn     func(ctx context.Context, order *domain.Order) error
	DeleteFn     func(ctx context.Context, id int64) error
	CountFn      func(ctx context.Context) (int64, error)
	TotalSalesFn func(ctx context.Context) (float64, error)
	ListByUserFn func(ctx context.Context, userID int64) ([]domain.Order, error)

	// Data for default implementation
	Orders     map[int64]*domain.Order
	NextID     int64
	NextItemID int64
}

// NewMockOrderStore creates a new mock store with initialized defaults
func NewMockOrderStore() *MockOrderStore {
	return &MockOrderStore{
		Orders:     make(map[int64]*domain.Order),
		NextID:     1,
		NextItemID: 1,
	}
}

func (m *MockOrderStore) sorted(match func(*domain.Order) bool) []domain.Order {
	orders := make([]domain.Order, 0, len(m.Orders))
	for _, order := range m.Orders {
		if match(order) {
			orders = append(orders, *order)
		}
	}
	// Newest first, matching the persistent store's ordering.
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return orders
}

// List implements the OrderStore interface
func (m *MockOrderStore) List(ctx context.Context) ([]domain.Order, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	return m.sorted(func(*domain.Order) bool { return true }), nil
}

// GetByID implements the OrderStore interface
func (m *MockOrderStore) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	order, exists := m.Orders[id]
	if !exists {
		return nil, store.ErrOrderNotFound
	}

	copied := *order
	return &copied, nil
}

// Create implements the OrderStore interface
func (m *MockOrderStore) Create(ctx context.Context, order *domain.Order) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, order)
	}

	if err := order.Validate(); err != nil {
		return err
	}

	order.ID = m.NextID
	m.NextID++
	for i := range order.Items {
		order.Items[i].ID = m.NextItemID
		order.Items[i].OrderID = order.ID
		m.NextItemID++
	}
	copied := *order
	m.Orders[order.ID] = &copied
	return nil
}

// Update implements the OrderStore interface
func (m *MockOrderStore) Update(ctx context.Context, order *domain.Order) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, order)
	}

	if _, exists := m.Orders[order.ID]; !exists {
		return store.ErrOrderNotFound
	}

	copied := *order
	m.Orders[order.ID] = &copied
	return nil
}

// Delete implements the OrderStore interface
func (m *MockOrderStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Orders[id]; !exists {
		return store.ErrOrderNotFound
	}

	delete(m.Orders, id)
	return nil
}

// Count implements the OrderStore interface
func (m *MockOrderStore) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}

	return int64(len(m.Orders)), nil
}

// TotalSales implements the OrderStore interface
func (m *MockOrderStore) TotalSales(ctx context.Context) (float64, error) {
	if m.TotalSalesFn != nil {
		return m.TotalSalesFn(ctx)
	}

	var total float64
	for _, order := range m.Orders {
		total += order.TotalPrice
	}
	return total, nil
}

// ListByUser implements the OrderStore interface
func (m *MockOrderStore) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}

	return m.sorted(func(o *domain.Order) bool { return o.UserID == userID }), nil
}

// Ensure MockOrderStore implements store.OrderStore
var _ store.OrderStore = (*MockOrderStore)(nil)
