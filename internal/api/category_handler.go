package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/nverra/storefront-api/internal/api/shared"
	"github.com/nverra/storefront-api/internal/domain"
	"github.com/nverra/storefront-api/internal/store"
)

// CategoryHandler handles category management API requests.
type CategoryHandler struct {
	categoryStore store.CategoryStore
	validator     *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler with the given dependencies.
func NewCategoryHandler(categoryStore store.CategoryStore) *CategoryHandler {
	return &CategoryHandler{
		categoryStore: categoryStore,
		validator:     validator.New(),
	}
}

// List handles GET /categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryStore.List(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, categories)
}

// Get handles GET /categories/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	category, err := h.categoryStore.GetByID(r.Context(), id)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, category)
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest

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

	category, err := domain.NewCategory(req.Name, req.Icon, req.Color)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if err := h.categoryStore.Create(r.Context(), category); err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, category)
}

// Update handles PUT /categories/{id}. Absent fields keep their stored
// values.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	var req UpdateCategoryRequest

	// Parse request
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// Merge over the current record
	category, err := h.categoryStore.GetByID(r.Context(), id)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Color != nil {
		category.Color = *req.Color
	}

	if err := category.Validate(); err != nil {
		HandleError(w, r, err)
		return
	}

	if err := h.categoryStore.Update(r.Context(), category); err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, category)
}

// Delete handles DELETE /categories/{id}.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if err := h.categoryStore.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrReferenced) {
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"The category still has products and cannot be deleted")
			return
		}
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, DeleteResponse{
		Message: "Category deleted.",
	})
}
