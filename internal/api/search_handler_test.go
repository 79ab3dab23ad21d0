package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nverra/storefront-api/internal/domain"
	"github.com/nverra/storefront-api/internal/mocks"
)

func newSearchRouter(productStore *mocks.MockProductStore) http.Handler {
	handler := NewSearchHandler(productStore)

	r := chi.NewRouter()
	r.Get("/search", handler.Search)
	return r
}

func searchResults(t *testing.T, router http.Handler, path string) []domain.Product {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []domain.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body.Data
}

func TestSearchMatches(t *testing.T) {
	t.Parallel()

	productStore := mocks.NewMockProductStore()
	require.NoError(t, productStore.Create(context.Background(), &domain.Product{
		Name:         "Mechanical Keyboard",
		Description:  "clicky switches",
		Price:        59.99,
		CountInStock: 3,
	}))
	require.NoError(t, productStore.Create(context.Background(), &domain.Product{
		Name:         "Mouse",
		Description:  "a quiet mouse",
		Price:        19.99,
		CountInStock: 3,
	}))
	router := newSearchRouter(productStore)

	results := searchResults(t, router, "/search?term=keyboard")
	require.Len(t, results, 1)
	assert.Equal(t, "Mechanical Keyboard", results[0].Name)

	// Description matches too
	results = searchResults(t, router, "/search?term=quiet")
	require.Len(t, results, 1)
	assert.Equal(t, "Mouse", results[0].Name)
}

func TestSearchImplicitCreate(t *testing.T) {
	t.Parallel()

	productStore := mocks.NewMockProductStore()
	router := newSearchRouter(productStore)

	// Zero matches with a term creates the product from the term
	results := searchResults(t, router, "/search?term=NoSuchItem123")
	require.Len(t, results, 1)
	created := results[0]
	assert.Equal(t, "NoSuchItem123", created.Name)
	assert.Equal(t, "NoSuchItem123", created.Description)
	assert.Equal(t, "NoSuchItem123 - rich description", created.RichDescription)
	assert.Equal(t, "NoSuchItem123", created.Brand)
	assert.Equal(t, float64(0), created.Price)
	assert.Equal(t, 0, created.CountInStock)
	assert.True(t, created.IsFeatured)

	// A second identical search finds exactly the persisted product
	results = searchResults(t, router, "/search?term=NoSuchItem123")
	require.Len(t, results, 1)
	assert.Equal(t, created.ID, results[0].ID)
	assert.Len(t, productStore.Products, 1)
}

func TestSearchImplicitCreateNumericTerm(t *testing.T) {
	t.Parallel()

	productStore := mocks.NewMockProductStore()
	router := newSearchRouter(productStore)

	results := searchResults(t, router, "/search?term=42")
	require.Len(t, results, 1)
	assert.Equal(t, "42", results[0].Name)
	assert.Equal(t, float64(42), results[0].Price)
	assert.Equal(t, domain.MaxRating, results[0].Rating)
	assert.Equal(t, 42, results[0].CountInStock)
	assert.Equal(t, 42, results[0].NumReviews)
}

func TestSearchImplicitCreateRatingStaysStorable(t *testing.T) {
	t.Parallel()

	productStore := mocks.NewMockProductStore()
	router := newSearchRouter(productStore)

	// A large numeric term must not synthesize a rating the rating
	// column cannot hold.
	results := searchResults(t, router, "/search?term=9000")
	require.Len(t, results, 1)
	assert.Equal(t, float64(9000), results[0].Price)
	assert.Equal(t, domain.MaxRating, results[0].Rating)
	require.Len(t, productStore.Products, 1)
	require.NoError(t, productStore.Products[results[0].ID].Validate())
}

func TestSearchWithoutTermNeverCreates(t *testing.T) {
	t.Parallel()

	productStore := mocks.NewMockProductStore()
	router := newSearchRouter(productStore)

	results := searchResults(t, router, "/search")
	assert.Empty(t, results)
	assert.Empty(t, productStore.Products)
}

func TestSearchCategoryFilter(t *testing.T) {
	t.Parallel()

	productStore := mocks.NewMockProductStore()
	one, two := int64(1), int64(2)
	require.NoError(t, productStore.Create(context.Background(), &domain.Product{
		Name:         "Keyboard",
		Description:  "desc",
		CategoryID:   &one,
		CountInStock: 1,
	}))
	require.NoError(t, productStore.Create(context.Background(), &domain.Product{
		Name:         "Keyboard Deluxe",
		Description:  "desc",
		CategoryID:   &two,
		CountInStock: 1,
	}))
	router := newSearchRouter(productStore)

	results := searchResults(t, router, "/search?term=keyboard&category_id=2")
	require.Len(t, results, 1)
	assert.Equal(t, "Keyboard Deluxe", results[0].Name)

	// Implicit create carries the category filter
	results = searchResults(t, router, "/search?term=Typewriter&category_id=2")
	require.Len(t, results, 1)
	require.NotNil(t, results[0].CategoryID)
	assert.Equal(t, int64(2), *results[0].CategoryID)

	// Malformed category_id is rejected
	req := httptest.NewRequest("GET", "/search?term=x&category_id=abc", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
