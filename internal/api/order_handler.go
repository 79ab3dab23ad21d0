package api

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/nverra/storefront-api/internal/api/shared"
	"github.com/nverra/storefront-api/internal/domain"
	"github.com/nverra/storefront-api/internal/store"
)

// OrderHandler handles order management API requests.
type OrderHandler struct {
	orderStore store.OrderStore
	validator  *validator.Validate
}

// NewOrderHandler creates a new OrderHandler with the given dependencies.
func NewOrderHandler(orderStore store.OrderStore) *OrderHandler {
	return &OrderHandler{
		orderStore: orderStore,
		validator:  validator.New(),
	}
}

// List handles GET /orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderStore.List(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, orders)
}

// Get handles GET /orders/{id}. The response includes the order's items.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	order, err := h.orderStore.GetByID(r.Context(), id)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, order)
}

// Create handles POST /orders. The order and its items are persisted in a
// single transaction.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest

	// Parse request
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.UserID <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "User ID is required")
		return
	}

	// Validate request
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithFieldErrors(
			w, r, http.StatusBadRequest, "Validation error", ValidationFieldErrors(err))
		return
	}

	order := &domain.Order{
		ShippingAddress1: req.ShippingAddress1,
		ShippingAddress2: req.ShippingAddress2,
		City:             req.City,
		Zip:              req.Zip,
		Country:          req.Country,
		Phone:            req.Phone,
		Status:           domain.OrderStatusPending,
		TotalPrice:       req.TotalPrice,
		UserID:           req.UserID,
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, domain.OrderItem{
			Quantity:  item.Quantity,
			ProductID: item.ProductID,
		})
	}

	if err := h.orderStore.Create(r.Context(), order); err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, order)
}

// Update handles PUT /orders/{id}. Absent fields keep their stored values;
// items cannot be changed after creation.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	var req UpdateOrderRequest

	// Parse request
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// Validate request
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithFieldErrors(
			w, r, http.StatusBadRequest, "Validation error", ValidationFieldErrors(err))
		return
	}

	// Merge over the current record
	order, err := h.orderStore.GetByID(r.Context(), id)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if req.ShippingAddress1 != nil {
		order.ShippingAddress1 = *req.ShippingAddress1
	}
	if req.ShippingAddress2 != nil {
		order.ShippingAddress2 = *req.ShippingAddress2
	}
	if req.City != nil {
		order.City = *req.City
	}
	if req.Zip != nil {
		order.Zip = *req.Zip
	}
	if req.Country != nil {
		order.Country = *req.Country
	}
	if req.Phone != nil {
		order.Phone = *req.Phone
	}
	if req.Status != nil {
		order.Status = *req.Status
	}
	if req.TotalPrice != nil {
		order.TotalPrice = *req.TotalPrice
	}

	if err := order.Validate(); err != nil {
		HandleError(w, r, err)
		return
	}

	if err := h.orderStore.Update(r.Context(), order); err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, order)
}

// Delete handles DELETE /orders/{id}. The order's items are removed with
// it.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if err := h.orderStore.Delete(r.Context(), id); err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, DeleteResponse{
		Message: fmt.Sprintf("Order with ID %d has been successfully deleted.", id),
	})
}

// Count handles GET /orders/get/count.
func (h *OrderHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.orderStore.Count(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, OrderCountResponse{OrderCount: count})
}

// TotalSales handles GET /orders/get/totalsales.
func (h *OrderHandler) TotalSales(w http.ResponseWriter, r *http.Request) {
	total, err := h.orderStore.TotalSales(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, TotalSalesResponse{TotalSales: total})
}

// UserOrders handles GET /orders/get/userorders/{userId}.
func (h *OrderHandler) UserOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathID(r, "userId")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	orders, err := h.orderStore.ListByUser(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, orders)
}
