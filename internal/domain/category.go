package domain

import (
	"errors"
	"time"
)

// ErrEmptyCategoryName is returned when a category is created or updated
// without a name.
var ErrEmptyCategoryName = errors.New("category name cannot be empty")

// Category groups products for browsing. Icon and color are presentation
// hints for clients and are optional.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon,omitempty"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewCategory creates a Category with the given fields.
// Returns an error if validation fails.
func NewCategory(name, icon, color string) (*Category, error) {
	now := time.Now().UTC()
	category := &Category{
		Name:      name,
		Icon:      icon,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrEmptyCategoryName
	}
	return nil
}
