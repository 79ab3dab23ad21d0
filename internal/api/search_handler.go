package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/nverra/storefront-api/internal/api/shared"
	"github.com/nverra/storefront-api/internal/domain"
	"github.com/nverra/storefront-api/internal/store"
)

// SearchHandler handles the product search endpoint.
type SearchHandler struct {
	productStore store.ProductStore
}

// NewSearchHandler creates a new SearchHandler with the given dependencies.
func NewSearchHandler(productStore store.ProductStore) *SearchHandler {
	return &SearchHandler{productStore: productStore}
}

// Search handles GET /search. The term query parameter is matched against
// product names and descriptions, and category_id restricts matches to one
// category.
//
// When a term is supplied and nothing matches, a new product derived from
// the literal term is created and returned as the sole result. The write
// side effect is longstanding API behavior that catalog tooling relies on.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter := store.SearchFilter{Term: r.URL.Query().Get("term")}

	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid category_id")
			return
		}
		filter.CategoryID = &id
	}

	products, err := h.productStore.Search(r.Context(), filter)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if len(products) == 0 && filter.Term != "" {
		product := productFromTerm(filter.Term, filter.CategoryID)
		if err := h.productStore.Create(r.Context(), product); err != nil {
			HandleError(w, r, err)
			return
		}
		products = append(products, *product)
	}

	shared.RespondWithData(w, r, http.StatusOK, products)
}

// productFromTerm synthesizes a product record from a search term. Numeric
// fields take the term's numeric value when it parses, zero otherwise.
func productFromTerm(term string, categoryID *int64) *domain.Product {
	price, _ := strconv.ParseFloat(term, 64)
	if price < 0 {
		price = 0
	}
	count, _ := strconv.Atoi(term)
	if count < 0 || count > domain.MaxCountInStock {
		count = 0
	}
	rating := price
	if rating > domain.MaxRating {
		rating = domain.MaxRating
	}

	return &domain.Product{
		Name:            term,
		Description:     term,
		RichDescription: fmt.Sprintf("%s - rich description", term),
		Brand:           term,
		Price:           price,
		Rating:          rating,
		CountInStock:    count,
		NumReviews:      count,
		IsFeatured:      true,
		CategoryID:      categoryID,
	}
}
