package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nverra/storefront-api/internal/domain"
	"github.com/nverra/storefront-api/internal/mocks"
	"github.com/nverra/storefront-api/internal/store"
	"github.com/nverra/storefront-api/internal/upload"
)

type productTestEnv struct {
	productStore  *mocks.MockProductStore
	categoryStore *mocks.MockCategoryStore
	uploadDir     string
	router        http.Handler
}

func newProductEnv(t *testing.T) *productTestEnv {
	t.Helper()

	productStore := mocks.NewMockProductStore()
	categoryStore := mocks.NewMockCategoryStore()
	uploadDir := t.TempDir()
	handler := NewProductHandler(
		productStore,
		categoryStore,
		upload.NewSaver(uploadDir),
		"/public/uploads",
	)

	r := chi.NewRouter()
	r.Get("/products", handler.List)
	r.Get("/products/get/count", handler.Count)
	r.Get("/products/get/featured/{count}", handler.Featured)
	r.Get("/products/{id}", handler.Get)
	r.Post("/products", handler.Create)
	r.Put("/products/gallery-images/{id}", handler.GalleryImages)
	r.Put("/products/{id}", handler.Update)
	r.Delete("/products/{id}", handler.Delete)

	return &productTestEnv{
		productStore:  productStore,
		categoryStore: categoryStore,
		uploadDir:     uploadDir,
		router:        r,
	}
}

// uploadedFiles lists the files currently in the env's upload directory.
func uploadedFiles(t *testing.T, env *productTestEnv) []string {
	t.Helper()

	entries, err := os.ReadDir(env.uploadDir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

// multipartFile describes one file part for buildMultipartRequest.
type multipartFile struct {
	field       string
	fileName    string
	contentType string
	content     []byte
}

func buildMultipartRequest(
	t *testing.T,
	method, path string,
	fields map[string]string,
	files ...multipartFile,
) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}

	for _, file := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			`form-data; name="`+file.field+`"; filename="`+file.fileName+`"`)
		header.Set("Content-Type", file.contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(file.content)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func pngUpload(field, name string) multipartFile {
	return multipartFile{
		field:       field,
		fileName:    name,
		contentType: "image/png",
		content:     []byte("png-bytes"),
	}
}

func seedProduct(t *testing.T, env *productTestEnv, name string, categoryID *int64, featured bool) *domain.Product {
	t.Helper()

	product := &domain.Product{
		Name:         name,
		Description:  name + " description",
		Price:        9.99,
		CountInStock: 5,
		CategoryID:   categoryID,
		IsFeatured:   featured,
	}
	require.NoError(t, env.productStore.Create(context.Background(), product))
	return product
}

func TestProductListCategoriesFilter(t *testing.T) {
	t.Parallel()

	env := newProductEnv(t)

	one, two, three := int64(1), int64(2), int64(3)
	seedProduct(t, env, "in cat one", &one, false)
	seedProduct(t, env, "in cat two", &two, false)
	seedProduct(t, env, "in cat three", &three, false)
	seedProduct(t, env, "uncategorized", nil, false)

	t.Run("no filter returns everything", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/products", nil)
		recorder := httptest.NewRecorder()
		env.router.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)

		var body struct {
			Data []domain.Product `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Len(t, body.Data, 4)
	})

	t.Run("filter restricts to the listed categories", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/products?categories=1,2", nil)
		recorder := httptest.NewRecorder()
		env.router.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)

		var body struct {
			Data []domain.Product `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		require.Len(t, body.Data, 2)
		for _, product := range body.Data {
			require.NotNil(t, product.CategoryID)
			assert.Contains(t, []int64{1, 2}, *product.CategoryID)
		}
	})

	t.Run("malformed filter is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/products?categories=1,abc", nil)
		recorder := httptest.NewRecorder()
		env.router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestProductCreate(t *testing.T) {
	t.Parallel()

	env := newProductEnv(t)
	seedCategory(t, env.categoryStore, "Electronics")

	validFields := func() map[string]string {
		return map[string]string{
			"name":         "Keyboard",
			"description":  "A mechanical keyboard",
			"price":        "59.99",
			"countInStock": "10",
			"category":     "1",
			"isFeatured":   "true",
		}
	}

	t.Run("valid create", func(t *testing.T) {
		req := buildMultipartRequest(t, "POST", "/products",
			validFields(), pngUpload("image", "kb photo.png"))
		recorder := httptest.NewRecorder()
		env.router.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusCreated, recorder.Code)

		var body struct {
			Data domain.Product `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "Keyboard", body.Data.Name)
		assert.True(t, body.Data.IsFeatured)
		assert.Contains(t, body.Data.Image, "http://example.com/public/uploads/kb-photo.png-")
		require.NotNil(t, body.Data.CategoryID)
		assert.Equal(t, int64(1), *body.Data.CategoryID)
	})

	t.Run("pdf upload is rejected and nothing persists", func(t *testing.T) {
		env := newProductEnv(t)
		seedCategory(t, env.categoryStore, "Electronics")

		req := buildMultipartRequest(t, "POST", "/products",
			validFields(), multipartFile{
				field:       "image",
				fileName:    "user manual.pdf",
				contentType: "application/pdf",
				content:     []byte("%PDF-1.4"),
			})
		recorder := httptest.NewRecorder()
		env.router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Invalid image type")
		assert.Empty(t, env.productStore.Products)
	})

	t.Run("missing image", func(t *testing.T) {
		req := buildMultipartRequest(t, "POST", "/products", validFields())
		recorder := httptest.NewRecorder()
		env.router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "No image in the request")
	})

	t.Run("unknown category", func(t *testing.T) {
		fields := validFields()
		fields["category"] = "999"
		req := buildMultipartRequest(t, "POST", "/products",
			fields, pngUpload("image", "kb.png"))
		recorder := httptest.NewRecorder()
		env.router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Invalid Category")
	})

	t.Run("stock above range fails validation", func(t *testing.T) {
		env := newProductEnv(t)
		seedCategory(t, env.categoryStore, "Electronics")

		fields := validFields()
		fields["countInStock"] = "300"
		req := buildMultipartRequest(t, "POST", "/products",
			fields, pngUpload("image", "kb.png"))
		recorder := httptest.NewRecorder()
		env.router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Empty(t, env.productStore.Products)
		assert.Empty(t, uploadedFiles(t, env))
	})

	t.Run("rejected payload leaves no file on disk", func(t *testing.T) {
		env := newProductEnv(t)
		seedCategory(t, env.categoryStore, "Electronics")

		fields := validFields()
		fields["name"] = ""
		req := buildMultipartRequest(t, "POST", "/products",
			fields, pngUpload("image", "kb.png"))
		recorder := httptest.NewRecorder()
		env.router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Empty(t, env.productStore.Products)
		assert.Empty(t, uploadedFiles(t, env))
	})

	t.Run("store failure removes the saved file", func(t *testing.T) {
		env := newProductEnv(t)
		seedCategory(t, env.categoryStore, "Electronics")
		env.productStore.CreateFn = func(context.Context, *domain.Product) error {
			return store.ErrInvalidEntity
		}

		req := buildMultipartRequest(t, "POST", "/products",
			validFields(), pngUpload("image", "kb.png"))
		recorder := httptest.NewRecorder()
		env.router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Empty(t, uploadedFiles(t, env))
	})
}

func TestProductUpdatePartial(t *testing.T) {
	t.Parallel()

	env := newProductEnv(t)
	seedCategory(t, env.categoryStore, "Electronics")
	one := int64(1)
	product := seedProduct(t, env, "Keyboard", &one, false)
	product.Brand = "Acme"
	require.NoError(t, env.productStore.Update(context.Background(), product))

	req := buildMultipartRequest(t, "PUT", "/products/1",
		map[string]string{"price": "49.99"})
	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	updated, err := env.productStore.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 49.99, updated.Price)
	assert.Equal(t, "Keyboard", updated.Name)
	assert.Equal(t, "Acme", updated.Brand)
	assert.Equal(t, 5, updated.CountInStock)
	require.NotNil(t, updated.CategoryID)
	assert.Equal(t, int64(1), *updated.CategoryID)
}

func TestProductDelete(t *testing.T) {
	t.Parallel()

	env := newProductEnv(t)
	seedProduct(t, env, "Keyboard", nil, false)

	t.Run("existing product", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/products/1", nil)
		recorder := httptest.NewRecorder()
		env.router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "The product is deleted!")
	})

	t.Run("nonexistent product yields 404 not 500", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/products/999", nil)
		recorder := httptest.NewRecorder()
		env.router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestProductFeatured(t *testing.T) {
	t.Parallel()

	env := newProductEnv(t)
	seedProduct(t, env, "plain", nil, false)
	seedProduct(t, env, "featured one", nil, true)
	seedProduct(t, env, "featured two", nil, true)
	seedProduct(t, env, "featured three", nil, true)

	req := httptest.NewRequest("GET", "/products/get/featured/2", nil)
	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []domain.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	for _, product := range body.Data {
		assert.True(t, product.IsFeatured)
	}
}

func TestProductFeaturedCountBounds(t *testing.T) {
	t.Parallel()

	env := newProductEnv(t)
	seedProduct(t, env, "featured", nil, true)

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantLen  int
	}{
		{"zero count yields empty list", "/products/get/featured/0", http.StatusOK, 0},
		{"non-numeric count", "/products/get/featured/lots", http.StatusBadRequest, 0},
		{"negative count", "/products/get/featured/-1", http.StatusBadRequest, 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest("GET", tc.path, nil)
			recorder := httptest.NewRecorder()
			env.router.ServeHTTP(recorder, req)

			require.Equal(t, tc.wantCode, recorder.Code)
			if tc.wantCode == http.StatusOK {
				var body struct {
					Data []domain.Product `json:"data"`
				}
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
				assert.Len(t, body.Data, tc.wantLen)
			}
		})
	}
}

func TestProductCount(t *testing.T) {
	t.Parallel()

	env := newProductEnv(t)
	seedProduct(t, env, "one", nil, false)
	seedProduct(t, env, "two", nil, false)

	req := httptest.NewRequest("GET", "/products/get/count", nil)
	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data ProductCountResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.Data.ProductCount)
}

func TestGalleryImages(t *testing.T) {
	t.Parallel()

	env := newProductEnv(t)
	seedProduct(t, env, "Keyboard", nil, false)

	t.Run("uploads replace the gallery", func(t *testing.T) {
		req := buildMultipartRequest(t, "PUT", "/products/gallery-images/1", nil,
			pngUpload("images", "front.png"),
			pngUpload("images", "back.png"))
		recorder := httptest.NewRecorder()
		env.router.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)

		var body struct {
			Data domain.Product `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		require.Len(t, body.Data.Images, 2)
		for _, url := range body.Data.Images {
			assert.Contains(t, url, "http://example.com/public/uploads/")
		}
	})

	t.Run("no files", func(t *testing.T) {
		req := buildMultipartRequest(t, "PUT", "/products/gallery-images/1", nil)
		recorder := httptest.NewRecorder()
		env.router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "No images in the request")
	})

	t.Run("more than ten files", func(t *testing.T) {
		files := make([]multipartFile, 11)
		for i := range files {
			files[i] = pngUpload("images", "img.png")
		}
		req := buildMultipartRequest(t, "PUT", "/products/gallery-images/1", nil, files...)
		recorder := httptest.NewRecorder()
		env.router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		req := buildMultipartRequest(t, "PUT", "/products/gallery-images/999", nil,
			pngUpload("images", "front.png"))
		recorder := httptest.NewRecorder()
		env.router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
