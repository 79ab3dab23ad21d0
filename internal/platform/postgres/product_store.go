package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nverra/storefront-api/internal/domain"
	"github.com/nverra/storefront-api/internal/platform/logger"
	"github.com/nverra/storefront-api/internal/store"
)

// PostgresProductStore implements the store.ProductStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProductStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProductStore creates a new PostgreSQL implementation of the
// ProductStore interface. The connection is initialized and managed by the
// caller. If logger is nil, the default logger is used.
func NewPostgresProductStore(db store.DBTX, logger *slog.Logger) *PostgresProductStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProductStore{
		db:     db,
		logger: logger.With(slog.String("component", "product_store")),
	}
}

// Ensure PostgresProductStore implements store.ProductStore interface
var _ store.ProductStore = (*PostgresProductStore)(nil)

// productSelect joins each product with its owning category. Gallery URLs
// are stored as a JSON array.
const productSelect = `
	SELECT p.id, p.name, p.description, p.rich_description, p.image,
		p.images, p.brand, p.price, p.category_id, p.count_in_stock,
		p.rating, p.num_reviews, p.is_featured, p.date_created,
		p.created_at, p.updated_at,
		c.id, c.name, c.icon, c.color
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
`

func scanProduct(row interface{ Scan(dest ...any) error }) (*domain.Product, error) {
	var (
		p          domain.Product
		imagesJSON []byte
		categoryID sql.NullInt64
		catID      sql.NullInt64
		catName    sql.NullString
		catIcon    sql.NullString
		catColor   sql.NullString
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.RichDescription,
		&p.Image,
		&imagesJSON,
		&p.Brand,
		&p.Price,
		&categoryID,
		&p.CountInStock,
		&p.Rating,
		&p.NumReviews,
		&p.IsFeatured,
		&p.DateCreated,
		&p.CreatedAt,
		&p.UpdatedAt,
		&catID,
		&catName,
		&catIcon,
		&catColor,
	)
	if err != nil {
		return nil, err
	}

	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
			return nil, fmt.Errorf("failed to decode gallery images: %w", err)
		}
	}

	if categoryID.Valid {
		id := categoryID.Int64
		p.CategoryID = &id
	}

	if catID.Valid {
		p.Category = &domain.Category{
			ID:    catID.Int64,
			Name:  catName.String,
			Icon:  catIcon.String,
			Color: catColor.String,
		}
	}

	return &p, nil
}

func (s *PostgresProductStore) queryProducts(
	ctx context.Context,
	query string,
	args ...any,
) ([]domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product row", slog.String("error", err.Error()))
			return nil, err
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning product rows", slog.String("error", err.Error()))
		return nil, err
	}

	return products, nil
}

// List implements store.ProductStore.List
func (s *PostgresProductStore) List(
	ctx context.Context,
	filter store.ProductFilter,
) ([]domain.Product, error) {
	query := productSelect
	args := []any{}

	if len(filter.CategoryIDs) > 0 {
		placeholders := make([]string, len(filter.CategoryIDs))
		for i, id := range filter.CategoryIDs {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
			args = append(args, id)
		}
		query += ` WHERE p.category_id IN (` + strings.Join(placeholders, ", ") + `)`
	}

	query += ` ORDER BY p.id`

	return s.queryProducts(ctx, query, args...)
}

// GetByID implements store.ProductStore.GetByID
// Returns store.ErrProductNotFound if the product does not exist.
func (s *PostgresProductStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	p, err := scanProduct(s.db.QueryRowContext(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProductNotFound
		}
		log.Error("failed to get product by ID",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return nil, err
	}

	return p, nil
}

// Create implements store.ProductStore.Create
// It validates the product, saves it, and fills in the generated ID.
// Returns store.ErrInvalidEntity if the referenced category does not exist.
func (s *PostgresProductStore) Create(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		log.Warn("product validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.DateCreated.IsZero() {
		product.DateCreated = now
	}

	imagesJSON, err := encodeImages(product.Images)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO products (name, description, rich_description, image,
			images, brand, price, category_id, count_in_stock, rating,
			num_reviews, is_featured, date_created, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`

	err = s.db.QueryRowContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.RichDescription,
		product.Image,
		imagesJSON,
		product.Brand,
		product.Price,
		nullableID(product.CategoryID),
		product.CountInStock,
		product.Rating,
		product.NumReviews,
		product.IsFeatured,
		product.DateCreated,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: category does not exist", store.ErrInvalidEntity)
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrStockOutOfRange)
		}
		log.Error("failed to create product",
			slog.String("error", err.Error()),
			slog.String("name", product.Name))
		return err
	}

	log.Info("product created", slog.Int64("product_id", product.ID))
	return nil
}

// Update implements store.ProductStore.Update
// Returns store.ErrProductNotFound if the product does not exist.
func (s *PostgresProductStore) Update(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		log.Warn("product validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("product_id", product.ID))
		return err
	}

	product.UpdatedAt = time.Now().UTC()

	imagesJSON, err := encodeImages(product.Images)
	if err != nil {
		return err
	}

	query := `
		UPDATE products
		SET name = $1, description = $2, rich_description = $3, image = $4,
			images = $5, brand = $6, price = $7, category_id = $8,
			count_in_stock = $9, rating = $10, num_reviews = $11,
			is_featured = $12, updated_at = $13
		WHERE id = $14
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.RichDescription,
		product.Image,
		imagesJSON,
		product.Brand,
		product.Price,
		nullableID(product.CategoryID),
		product.CountInStock,
		product.Rating,
		product.NumReviews,
		product.IsFeatured,
		product.UpdatedAt,
		product.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: category does not exist", store.ErrInvalidEntity)
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrStockOutOfRange)
		}
		log.Error("failed to update product",
			slog.String("error", err.Error()),
			slog.Int64("product_id", product.ID))
		return err
	}

	return requireRowAffected(result, store.ErrProductNotFound)
}

// Delete implements store.ProductStore.Delete
// Returns store.ErrProductNotFound if the product does not exist.
func (s *PostgresProductStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: product %d appears in orders", store.ErrReferenced, id)
		}
		log.Error("failed to delete product",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return err
	}

	if err := requireRowAffected(result, store.ErrProductNotFound); err != nil {
		return err
	}

	log.Info("product deleted", slog.Int64("product_id", id))
	return nil
}

// Count implements store.ProductStore.Count
func (s *PostgresProductStore) Count(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		log.Error("failed to count products", slog.String("error", err.Error()))
		return 0, err
	}

	return count, nil
}

// ListFeatured implements store.ProductStore.ListFeatured
func (s *PostgresProductStore) ListFeatured(
	ctx context.Context,
	limit int,
) ([]domain.Product, error) {
	if limit <= 0 {
		return []domain.Product{}, nil
	}

	query := productSelect + ` WHERE p.is_featured ORDER BY p.id LIMIT $1`
	return s.queryProducts(ctx, query, limit)
}

// Search implements store.ProductStore.Search
// The term matches case-insensitively against name or description.
func (s *PostgresProductStore) Search(
	ctx context.Context,
	filter store.SearchFilter,
) ([]domain.Product, error) {
	conds := []string{}
	args := []any{}

	if filter.Term != "" {
		args = append(args, "%"+filter.Term+"%")
		n := fmt.Sprintf("$%d", len(args))
		conds = append(conds, `(p.name ILIKE `+n+` OR p.description ILIKE `+n+`)`)
	}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conds = append(conds, fmt.Sprintf("p.category_id = $%d", len(args)))
	}

	query := productSelect
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY p.id`

	return s.queryProducts(ctx, query, args...)
}

// SetGalleryImages implements store.ProductStore.SetGalleryImages
// Returns store.ErrProductNotFound if the product does not exist.
func (s *PostgresProductStore) SetGalleryImages(
	ctx context.Context,
	id int64,
	urls []string,
) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	imagesJSON, err := encodeImages(urls)
	if err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE products SET images = $1, updated_at = $2 WHERE id = $3`,
		imagesJSON, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update gallery images",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return nil, err
	}

	if err := requireRowAffected(result, store.ErrProductNotFound); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// encodeImages serializes a gallery URL list for the jsonb column.
// A nil slice is stored as an empty JSON array.
func encodeImages(urls []string) ([]byte, error) {
	if urls == nil {
		urls = []string{}
	}
	data, err := json.Marshal(urls)
	if err != nil {
		return nil, fmt.Errorf("failed to encode gallery images: %w", err)
	}
	return data, nil
}

// nullableID converts an optional foreign key into a driver-friendly value.
func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
