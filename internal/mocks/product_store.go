package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/nverra/storefront-api/internal/domain"
	"github.com/nverra/storefront-api/internal/store"
)

// MockProductStore implements store.ProductStore for testing
type MockProductStore struct {
	// Function fields for customizable behavior
	ListFn             func(ctx context.Context, filter store.ProductFilter) ([]domain.Product, error)
	GetByIDFn          func(ctx context.Context, id int64) (*domain.Product, error)
	CreateFn           func(ctx context.Context, product *domain.Product) error
	UpdateFn           func(ctx context.Context, product *domain.Product) error
	DeleteFn           func(ctx context.Context, id int64) error
	CountFn            func(ctx context.Context) (int64, error)
	ListFeaturedFn     func(ctx context.Context, limit int) ([]domain.Product, error)
	SearchFn           func(ctx context.Context, filter store.SearchFilter) ([]domain.Product, error)
	SetGalleryImagesFn func(ctx context.Context, id int64, urls []string) (*domain.Product, error)

	// Data for default implementation
	Products map[int64]*domain.Product
	NextID   int64
}

// NewMockProductStore creates a new mock store with initialized defaults
func NewMockProductStore() *MockProductStore {
	return &MockProductStore{
		Products: make(map[int64]*domain.Product),
		NextID:   1,
	}
}

func (m *MockProductStore) sorted(match func(*domain.Product) bool) []domain.Product {
	products := make([]domain.Product, 0, len(m.Products))
	for _, product := range m.Products {
		if match(product) {
			products = append(products, *product)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}

// List implements the ProductStore interface
func (m *MockProductStore) List(
	ctx context.Context,
	filter store.ProductFilter,
) ([]domain.Product, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}

	return m.sorted(func(p *domain.Product) bool {
		if len(filter.CategoryIDs) == 0 {
			return true
		}
		if p.CategoryID == nil {
			return false
		}
		for _, id := range filter.CategoryIDs {
			if *p.CategoryID == id {
				return true
			}
		}
		return false
	}), nil
}

// GetByID implements the ProductStore interface
func (m *MockProductStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	product, exists := m.Products[id]
	if !exists {
		return nil, store.ErrProductNotFound
	}

	copied := *product
	return &copied, nil
}

// Create implements the ProductStore interface
func (m *MockProductStore) Create(ctx context.Context, product *domain.Product) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, product)
	}

	if err := product.Validate(); err != nil {
		return err
	}

	product.ID = m.NextID
	m.NextID++
	copied := *product
	m.Products[product.ID] = &copied
	return nil
}

// Update implements the ProductStore interface
func (m *MockProductStore) Update(ctx context.Context, product *domain.Product) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, product)
	}

	if _, exists := m.Products[product.ID]; !exists {
		return store.ErrProductNotFound
	}

	copied := *product
	m.Products[product.ID] = &copied
	return nil
}

// Delete implements the ProductStore interface
func (m *MockProductStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Products[id]; !exists {
		return store.ErrProductNotFound
	}

	delete(m.Products, id)
	return nil
}

// Count implements the ProductStore interface
func (m *MockProductStore) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}

	return int64(len(m.Products)), nil
}

// ListFeatured implements the ProductStore interface
func (m *MockProductStore) ListFeatured(ctx context.Context, limit int) ([]domain.Product, error) {
	if m.ListFeaturedFn != nil {
		return m.ListFeaturedFn(ctx, limit)
	}

	if limit <= 0 {
		return []domain.Product{}, nil
	}

	featured := m.sorted(func(p *domain.Product) bool { return p.IsFeatured })
	if len(featured) > limit {
		featured = featured[:limit]
	}
	return featured, nil
}

// Search implements the ProductStore interface
func (m *MockProductStore) Search(
	ctx context.Context,
	filter store.SearchFilter,
) ([]domain.Product, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, filter)
	}

	term := strings.ToLower(filter.Term)
	return m.sorted(func(p *domain.Product) bool {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			return false
		}
		if filter.CategoryID != nil {
			return p.CategoryID != nil && *p.CategoryID == *filter.CategoryID
		}
		return true
	}), nil
}

// SetGalleryImages implements the ProductStore interface
func (m *MockProductStore) SetGalleryImages(
	ctx context.Context,
	id int64,
	urls []string,
) (*domain.Product, error) {
	if m.SetGalleryImagesFn != nil {
		return m.SetGalleryImagesFn(ctx, id, urls)
	}

	product, exists := m.Products[id]
	if !exists {
		return nil, store.ErrProductNotFound
	}

	product.Images = urls
	copied := *product
	return &copied, nil
}

// Ensure MockProductStore implements store.ProductStore
var _ store.ProductStore = (*MockProductStore)(nil)
