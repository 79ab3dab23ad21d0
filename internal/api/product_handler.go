package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nverra/storefront-api/internal/api/shared"
	"github.com/nverra/storefront-api/internal/domain"
	"github.com/nverra/storefront-api/internal/store"
	"github.com/nverra/storefront-api/internal/upload"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing.
const maxUploadMemory = 32 << 20 // 32 MiB

// maxGalleryImages caps the number of files accepted by a single gallery
// upload.
const maxGalleryImages = 10

// invalidCategoryMessage is returned when a product payload references a
// category that does not exist.
const invalidCategoryMessage = "Invalid Category"

// ProductHandler handles product management API requests. Product writes
// arrive as multipart forms because they can carry an image file.
type ProductHandler struct {
	productStore  store.ProductStore
	categoryStore store.CategoryStore
	saver         *upload.Saver
	publicPath    string
}

// NewProductHandler creates a new ProductHandler with the given dependencies.
// publicPath is the URL path prefix under which saved uploads are served.
func NewProductHandler(
	productStore store.ProductStore,
	categoryStore store.CategoryStore,
	saver *upload.Saver,
	publicPath string,
) *ProductHandler {
	return &ProductHandler{
		productStore:  productStore,
		categoryStore: categoryStore,
		saver:         saver,
		publicPath:    strings.TrimSuffix(publicPath, "/"),
	}
}

// uploadBaseURL builds the absolute URL prefix for uploaded files from the
// request's scheme and host.
func (h *ProductHandler) uploadBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s/", scheme, r.Host, h.publicPath)
}

// List handles GET /products. An optional categories query parameter holds
// a comma-separated list of category IDs to filter by.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter store.ProductFilter

	if raw := r.URL.Query().Get("categories"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				shared.RespondWithError(
					w, r, http.StatusBadRequest, "Invalid categories filter")
				return
			}
			filter.CategoryIDs = append(filter.CategoryIDs, id)
		}
	}

	products, err := h.productStore.List(r.Context(), filter)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, products)
}

// Get handles GET /products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	product, err := h.productStore.GetByID(r.Context(), id)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, product)
}

// Create handles POST /products. The payload is a multipart form carrying
// the product fields and a required image file.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	categoryID, err := h.requireCategory(r, r.FormValue("category"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, invalidCategoryMessage)
		return
	}

	_, fileHeader, err := r.FormFile("image")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No image in the request")
		return
	}

	product := &domain.Product{
		Name:            r.FormValue("name"),
		Description:     r.FormValue("description"),
		RichDescription: r.FormValue("richDescription"),
		Brand:           r.FormValue("brand"),
		CategoryID:      categoryID,
	}

	if product.Price, err = formFloat(r, "price"); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid price")
		return
	}
	if product.CountInStock, err = formInt(r, "countInStock"); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid countInStock")
		return
	}
	if product.Rating, err = formFloat(r, "rating"); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid rating")
		return
	}
	if product.NumReviews, err = formInt(r, "numReviews"); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid numReviews")
		return
	}
	product.IsFeatured = formBool(r, "isFeatured")

	if err := product.Validate(); err != nil {
		HandleError(w, r, err)
		return
	}

	// The file hits disk only after the payload has passed every check, so
	// a rejected payload cannot leave an orphaned upload behind.
	fileName, err := h.saver.Save(fileHeader)
	if err != nil {
		if errors.Is(err, upload.ErrInvalidImageType) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid image type")
			return
		}
		HandleError(w, r, err)
		return
	}
	product.Image = h.uploadBaseURL(r) + fileName

	if err := h.productStore.Create(r.Context(), product); err != nil {
		if removeErr := h.saver.Remove(fileName); removeErr != nil {
			slog.Warn("failed to remove upload after create failure",
				"file", fileName, "error", removeErr)
		}
		if errors.Is(err, store.ErrInvalidEntity) {
			shared.RespondWithError(w, r, http.StatusBadRequest, invalidCategoryMessage)
			return
		}
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, product)
}

// Update handles PUT /products/{id}. The payload is a multipart form;
// absent fields keep their stored values and a supplied image file replaces
// the current one.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	product, err := h.productStore.GetByID(r.Context(), id)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if hasFormValue(r, "category") {
		categoryID, err := h.requireCategory(r, r.FormValue("category"))
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, invalidCategoryMessage)
			return
		}
		product.CategoryID = categoryID
	}

	if hasFormValue(r, "name") {
		product.Name = r.FormValue("name")
	}
	if hasFormValue(r, "description") {
		product.Description = r.FormValue("description")
	}
	if hasFormValue(r, "richDescription") {
		product.RichDescription = r.FormValue("richDescription")
	}
	if hasFormValue(r, "brand") {
		product.Brand = r.FormValue("brand")
	}
	if hasFormValue(r, "price") {
		if product.Price, err = formFloat(r, "price"); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid price")
			return
		}
	}
	if hasFormValue(r, "countInStock") {
		if product.CountInStock, err = formInt(r, "countInStock"); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid countInStock")
			return
		}
	}
	if hasFormValue(r, "rating") {
		if product.Rating, err = formFloat(r, "rating"); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid rating")
			return
		}
	}
	if hasFormValue(r, "numReviews") {
		if product.NumReviews, err = formInt(r, "numReviews"); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid numReviews")
			return
		}
	}
	if hasFormValue(r, "isFeatured") {
		product.IsFeatured = formBool(r, "isFeatured")
	}

	if err := product.Validate(); err != nil {
		HandleError(w, r, err)
		return
	}

	var savedFile string
	if _, fileHeader, err := r.FormFile("image"); err == nil {
		fileName, err := h.saver.Save(fileHeader)
		if err != nil {
			if errors.Is(err, upload.ErrInvalidImageType) {
				shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid image type")
				return
			}
			HandleError(w, r, err)
			return
		}
		savedFile = fileName
		product.Image = h.uploadBaseURL(r) + fileName
	}

	if err := h.productStore.Update(r.Context(), product); err != nil {
		if savedFile != "" {
			if removeErr := h.saver.Remove(savedFile); removeErr != nil {
				slog.Warn("failed to remove upload after update failure",
					"file", savedFile, "error", removeErr)
			}
		}
		if errors.Is(err, store.ErrInvalidEntity) {
			shared.RespondWithError(w, r, http.StatusBadRequest, invalidCategoryMessage)
			return
		}
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, product)
}

// Delete handles DELETE /products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if err := h.productStore.Delete(r.Context(), id); err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, DeleteResponse{
		Message: "The product is deleted!",
	})
}

// Count handles GET /products/get/count.
func (h *ProductHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.productStore.Count(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, ProductCountResponse{ProductCount: count})
}

// Featured handles GET /products/get/featured/{count}.
func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	// Unlike entity IDs a count of zero is fine, it just yields an empty
	// list.
	count, err := strconv.Atoi(chi.URLParam(r, "count"))
	if err != nil || count < 0 {
		HandleError(w, r, fmt.Errorf("%w: count", domain.ErrInvalidID))
		return
	}

	products, err := h.productStore.ListFeatured(r.Context(), count)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, products)
}

// GalleryImages handles PUT /products/gallery-images/{id}. The payload is
// a multipart form carrying up to maxGalleryImages files under the images
// field; the product's gallery is replaced with the uploaded set.
func (h *ProductHandler) GalleryImages(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	if r.MultipartForm == nil || len(r.MultipartForm.File["images"]) == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No images in the request")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) > maxGalleryImages {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			fmt.Sprintf("Too many images: at most %d are accepted", maxGalleryImages))
		return
	}

	baseURL := h.uploadBaseURL(r)
	urls := make([]string, 0, len(files))
	for _, fileHeader := range files {
		fileName, err := h.saver.Save(fileHeader)
		if err != nil {
			if errors.Is(err, upload.ErrInvalidImageType) {
				shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid image type")
				return
			}
			HandleError(w, r, err)
			return
		}
		urls = append(urls, baseURL+fileName)
	}

	product, err := h.productStore.SetGalleryImages(r.Context(), id, urls)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, product)
}

// requireCategory parses a category form value and confirms the category
// exists. Returns the parsed ID, or an error for a missing value, an
// unparsable value, or an unknown category.
func (h *ProductHandler) requireCategory(r *http.Request, raw string) (*int64, error) {
	if raw == "" {
		return nil, store.ErrCategoryNotFound
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: category", domain.ErrInvalidID)
	}

	if _, err := h.categoryStore.GetByID(r.Context(), id); err != nil {
		return nil, err
	}

	return &id, nil
}

// hasFormValue reports whether the multipart form carries a value for the
// given field, even an empty one.
func hasFormValue(r *http.Request, name string) bool {
	if r.MultipartForm == nil {
		return false
	}
	_, ok := r.MultipartForm.Value[name]
	return ok
}

// formFloat parses an optional float form field. An absent or empty field
// parses as zero.
func formFloat(r *http.Request, name string) (float64, error) {
	raw := r.FormValue(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

// formInt parses an optional integer form field. An absent or empty field
// parses as zero.
func formInt(r *http.Request, name string) (int, error) {
	raw := r.FormValue(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// formBool parses an optional boolean form field. Anything but "true" and
// "1" is false.
func formBool(r *http.Request, name string) bool {
	raw := r.FormValue(name)
	return raw == "true" || raw == "1"
}
