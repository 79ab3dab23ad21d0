package domain

import (
	"errors"
	"time"
)

// OrderStatusPending is the status assigned to newly created orders.
const OrderStatusPending = "Pending"

// Common order validation errors
var (
	ErrEmptyShippingAddress = errors.New("shipping address cannot be empty")
	ErrEmptyOrderCity       = errors.New("order city cannot be empty")
	ErrEmptyOrderZip        = errors.New("order zip cannot be empty")
	ErrEmptyOrderCountry    = errors.New("order country cannot be empty")
	ErrEmptyOrderPhone      = errors.New("order phone cannot be empty")
	ErrMissingOrderUser     = errors.New("order user ID is required")
	ErrInvalidQuantity      = errors.New("order item quantity must be positive")
)

// OrderItem links a product to an order with a purchase quantity.
type OrderItem struct {
	ID        int64 `json:"id"`
	Quantity  int   `json:"quantity"`
	ProductID int64 `json:"productId"`
	OrderID   int64 `json:"orderId"`
}

// Validate checks if the OrderItem has valid data.
func (i *OrderItem) Validate() error {
	if i.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// Order is a customer purchase with its shipping details and line items.
// Status defaults to OrderStatusPending at creation.
type Order struct {
	ID               int64       `json:"id"`
	ShippingAddress1 string      `json:"shippingAddress1"`
	ShippingAddress2 string      `json:"shippingAddress2,omitempty"`
	City             string      `json:"city"`
	Zip              string      `json:"zip"`
	Country          string      `json:"country"`
	Phone            string      `json:"phone"`
	Status           string      `json:"status"`
	TotalPrice       float64     `json:"totalPrice"`
	UserID           int64       `json:"userId"`
	Items            []OrderItem `json:"orderItems,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// Validate checks if the Order and all of its items have valid data.
// Returns an error if any field fails validation.
func (o *Order) Validate() error {
	if o.UserID <= 0 {
		return ErrMissingOrderUser
	}

	if o.ShippingAddress1 == "" {
		return ErrEmptyShippingAddress
	}

	if o.City == "" {
		return ErrEmptyOrderCity
	}

	if o.Zip == "" {
		return ErrEmptyOrderZip
	}

	if o.Country == "" {
		return ErrEmptyOrderCountry
	}

	if o.Phone == "" {
		return ErrEmptyOrderPhone
	}

	for i := range o.Items {
		if err := o.Items[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}
