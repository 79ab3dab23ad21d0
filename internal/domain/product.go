package domain

import (
	"errors"
	"fmt"
	"time"
)

// MaxCountInStock is the upper bound on a product's stock counter.
// The persistence layer enforces the same range with a CHECK constraint.
const MaxCountInStock = 255

// MaxRating is the upper bound on a product rating. The rating column is
// NUMERIC(3,2), so anything above 9.99 cannot be stored.
const MaxRating = 9.99

// Common product validation errors
var (
	ErrEmptyProductName        = errors.New("product name cannot be empty")
	ErrEmptyProductDescription = errors.New("product description cannot be empty")
	ErrNegativePrice           = errors.New("product price cannot be negative")
	ErrStockOutOfRange         = fmt.Errorf(
		"count in stock must be between 0 and %d", MaxCountInStock)
	ErrRatingOutOfRange = fmt.Errorf(
		"rating must be between 0 and %v", MaxRating)
)

// Product is a catalog entry. Image holds the primary upload filename;
// Images holds fully-qualified gallery URLs. Category is populated by read
// operations that join the owning category and is nil otherwise.
type Product struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	RichDescription string    `json:"richDescription,omitempty"`
	Image           string    `json:"image"`
	Images          []string  `json:"images,omitempty"`
	Brand           string    `json:"brand,omitempty"`
	Price           float64   `json:"price"`
	CategoryID      *int64    `json:"categoryId,omitempty"`
	Category        *Category `json:"category,omitempty"`
	CountInStock    int       `json:"countInStock"`
	Rating          float64   `json:"rating"`
	NumReviews      int       `json:"numReviews"`
	IsFeatured      bool      `json:"isFeatured"`
	DateCreated     time.Time `json:"dateCreated"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Validate checks if the Product has valid data.
// Returns an error if any field fails validation.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrEmptyProductName
	}

	if p.Description == "" {
		return ErrEmptyProductDescription
	}

	if p.Price < 0 {
		return ErrNegativePrice
	}

	if p.CountInStock < 0 || p.CountInStock > MaxCountInStock {
		return ErrStockOutOfRange
	}

	if p.Rating < 0 || p.Rating > MaxRating {
		return ErrRatingOutOfRange
	}

	return nil
}
