package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductValidate(t *testing.T) {
	t.Parallel()

	valid := func() Product {
		return Product{
			Name:         "Keyboard",
			Description:  "A mechanical keyboard",
			Price:        59.99,
			CountInStock: 10,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Product)
		wantErr error
	}{
		{
			name:    "valid product",
			mutate:  func(*Product) {},
			wantErr: nil,
		},
		{
			name:    "empty name",
			mutate:  func(p *Product) { p.Name = "" },
			wantErr: ErrEmptyProductName,
		},
		{
			name:    "empty description",
			mutate:  func(p *Product) { p.Description = "" },
			wantErr: ErrEmptyProductDescription,
		},
		{
			name:    "negative price",
			mutate:  func(p *Product) { p.Price = -0.01 },
			wantErr: ErrNegativePrice,
		},
		{
			name:    "zero price is valid",
			mutate:  func(p *Product) { p.Price = 0 },
			wantErr: nil,
		},
		{
			name:    "negative stock",
			mutate:  func(p *Product) { p.CountInStock = -1 },
			wantErr: ErrStockOutOfRange,
		},
		{
			name:    "stock above maximum",
			mutate:  func(p *Product) { p.CountInStock = MaxCountInStock + 1 },
			wantErr: ErrStockOutOfRange,
		},
		{
			name:    "stock at maximum is valid",
			mutate:  func(p *Product) { p.CountInStock = MaxCountInStock },
			wantErr: nil,
		},
		{
			name:    "stock at zero is valid",
			mutate:  func(p *Product) { p.CountInStock = 0 },
			wantErr: nil,
		},
		{
			name:    "negative rating",
			mutate:  func(p *Product) { p.Rating = -0.5 },
			wantErr: ErrRatingOutOfRange,
		},
		{
			name:    "rating above maximum",
			mutate:  func(p *Product) { p.Rating = MaxRating + 0.01 },
			wantErr: ErrRatingOutOfRange,
		},
		{
			name:    "rating at maximum is valid",
			mutate:  func(p *Product) { p.Rating = MaxRating },
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			product := valid()
			tt.mutate(&product)

			err := product.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
