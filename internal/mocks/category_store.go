package mocks

import (
	"context"
	"sort"

	"github.com/nverra/storefront-api/internal/domain"
	"github.com/nverra/storefront-api/internal/store"
)

// MockCategoryStore implements store.CategoryStore for testing
type MockCategoryStore struct {
	// Function fields for customizable behavior
	ListFn    func(ctx context.Context) ([]domain.Category, error)
	GetByIDFn func(ctx context.Context, id int64) (*domain.Category, error)
	CreateFn  func(ctx context.Context, category *domain.Category) error
	UpdateFn  func(ctx context.Context, category *domain.Category) error
	DeleteFn  func(ctx context.Context, id int64) error

	// Data for default implementation
	Categories map[int64]*domain.Category
	NextID     int64
}

// NewMockCategoryStore creates a new mock store with initialized defaults
func NewMockCategoryStore() *MockCategoryStore {
	return &MockCategoryStore{
		Categories: make(map[int64]*domain.Category),
		NextID:     1,
	}
}

// List implements the CategoryStore interface
func (m *MockCategoryStore) List(ctx context.Context) ([]domain.Category, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	categories := make([]domain.Category, 0, len(m.Categories))
	for _, category := range m.Categories {
		categories = append(categories, *category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

// GetByID implements the CategoryStore interface
func (m *MockCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	category, exists := m.Categories[id]
	if !exists {
		return nil, store.ErrCategoryNotFound
	}

	copied := *category
	return &copied, nil
}

// Create implements the CategoryStore interface
func (m *MockCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, category)
	}

	category.ID = m.NextID
	m.NextID++
	copied := *category
	m.Categories[category.ID] = &copied
	return nil
}

// Update implements the CategoryStore interface
func (m *MockCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, category)
	}

	if _, exists := m.Categories[category.ID]; !exists {
		return store.ErrCategoryNotFound
	}

	copied := *category
	m.Categories[category.ID] = &copied
	return nil
}

// Delete implements the CategoryStore interface
func (m *MockCategoryStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Categories[id]; !exists {
		return store.ErrCategoryNotFound
	}

	delete(m.Categories, id)
	return nil
}

// Ensure MockCategoryStore implements store.CategoryStore
var _ store.CategoryStore = (*MockCategoryStore)(nil)
