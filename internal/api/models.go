package api

// Common request/response structures

// RegisterRequest defines the payload for user registration and creation.
type RegisterRequest struct {
	Name      string `json:"name"      validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6,max=72"`
	Phone     string `json:"phone"     validate:"required"`
	IsAdmin   bool   `json:"isAdmin"`
	Street    string `json:"street"`
	Apartment string `json:"apartment"`
	Zip       string `json:"zip"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

// UpdateUserRequest defines the partial payload for user updates.
// Nil fields keep their current values; a non-nil Password is re-hashed.
type UpdateUserRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Password  *string `json:"password"  validate:"omitempty,min=6,max=72"`
	Phone     *string `json:"phone"`
	IsAdmin   *bool   `json:"isAdmin"`
	Street    *string `json:"street"`
	Apartment *string `json:"apartment"`
	Zip       *string `json:"zip"`
	City      *string `json:"city"`
	Country   *string `json:"country"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	Email        string `json:"email"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint.
type RefreshTokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// CategoryRequest defines the payload for category creation.
type CategoryRequest struct {
	Name  string `json:"name" validate:"required"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// UpdateCategoryRequest defines the partial payload for category updates.
type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

// OrderItemRequest defines one purchase line in an order creation payload.
type OrderItemRequest struct {
	Quantity  int   `json:"quantity"  validate:"required,gt=0"`
	ProductID int64 `json:"productId" validate:"required,gt=0"`
}

// CreateOrderRequest defines the payload for order creation.
type CreateOrderRequest struct {
	ShippingAddress1 string             `json:"shippingAddress1" validate:"required"`
	ShippingAddress2 string             `json:"shippingAddress2"`
	City             string             `json:"city"             validate:"required"`
	Zip              string             `json:"zip"              validate:"required"`
	Country          string             `json:"country"          validate:"required"`
	Phone            string             `json:"phone"            validate:"required"`
	TotalPrice       float64            `json:"totalPrice"       validate:"gte=0"`
	UserID           int64              `json:"userId"`
	Items            []OrderItemRequest `json:"orderItems"       validate:"dive"`
}

// UpdateOrderRequest defines the partial payload for order updates.
// Items cannot be changed after creation.
type UpdateOrderRequest struct {
	ShippingAddress1 *string  `json:"shippingAddress1"`
	ShippingAddress2 *string  `json:"shippingAddress2"`
	City             *string  `json:"city"`
	Zip              *string  `json:"zip"`
	Country          *string  `json:"country"`
	Phone            *string  `json:"phone"`
	Status           *string  `json:"status"`
	TotalPrice       *float64 `json:"totalPrice" validate:"omitempty,gte=0"`
}

// Count and aggregate responses

// ProductCountResponse carries the product count aggregate.
type ProductCountResponse struct {
	ProductCount int64 `json:"productCount"`
}

// UserCountResponse carries the user count aggregate.
type UserCountResponse struct {
	UserCount int64 `json:"userCount"`
}

// OrderCountResponse carries the order count aggregate.
type OrderCountResponse struct {
	OrderCount int64 `json:"orderCount"`
}

// TotalSalesResponse carries the summed order totals.
type TotalSalesResponse struct {
	TotalSales float64 `json:"totalSales"`
}

// DeleteResponse confirms a successful delete.
type DeleteResponse struct {
	Message string `json:"message"`
}
