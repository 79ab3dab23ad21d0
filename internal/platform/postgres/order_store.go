package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nverra/storefront-api/internal/domain"
	"github.com/nverra/storefront-api/internal/platform/logger"
	"github.com/nverra/storefront-api/internal/store"
)

// PostgresOrderStore implements the store.OrderStore interface
// using a PostgreSQL database as the storage backend.
// It holds the connection pool directly because order creation spans the
// orders and order_items tables in one transaction.
type PostgresOrderStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresOrderStore creates a new PostgreSQL implementation of the
// OrderStore interface. The connection pool is initialized and managed by
// the caller. If logger is nil, the default logger is used.
func NewPostgresOrderStore(db *sql.DB, logger *slog.Logger) *PostgresOrderStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresOrderStore{
		db:     db,
		logger: logger.With(slog.String("component", "order_store")),
	}
}

// Ensure PostgresOrderStore implements store.OrderStore interface
var _ store.OrderStore = (*PostgresOrderStore)(nil)

const orderColumns = `id, shipping_address1, shipping_address2, city, zip,
	country, phone, status, total_price, user_id, created_at, updated_at`

func scanOrder(row interface{ Scan(dest ...any) error }) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID,
		&o.ShippingAddress1,
		&o.ShippingAddress2,
		&o.City,
		&o.Zip,
		&o.Country,
		&o.Phone,
		&o.Status,
		&o.TotalPrice,
		&o.UserID,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *PostgresOrderStore) queryOrders(
	ctx context.Context,
	query string,
	args ...any,
) ([]domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order row", slog.String("error", err.Error()))
			return nil, err
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning order rows", slog.String("error", err.Error()))
		return nil, err
	}

	return orders, nil
}

// List implements store.OrderStore.List
func (s *PostgresOrderStore) List(ctx context.Context) ([]domain.Order, error) {
	return s.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC`)
}

// ListByUser implements store.OrderStore.ListByUser
func (s *PostgresOrderStore) ListByUser(
	ctx context.Context,
	userID int64,
) ([]domain.Order, error) {
	return s.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
}

// GetByID implements store.OrderStore.GetByID
// The returned order includes its items.
// Returns store.ErrOrderNotFound if the order does not exist.
func (s *PostgresOrderStore) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	o, err := scanOrder(s.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrOrderNotFound
		}
		log.Error("failed to get order by ID",
			slog.String("error", err.Error()),
			slog.Int64("order_id", id))
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quantity, product_id, order_id
		 FROM order_items WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		log.Error("failed to query order items",
			slog.String("error", err.Error()),
			slog.Int64("order_id", id))
		return nil, err
	}
	defer closeRows(rows, log)

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.Quantity, &item.ProductID, &item.OrderID); err != nil {
			log.Error("failed to scan order item row", slog.String("error", err.Error()))
			return nil, err
		}
		o.Items = append(o.Items, item)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning order item rows", slog.String("error", err.Error()))
		return nil, err
	}

	return o, nil
}

// Create implements store.OrderStore.Create
// The order and its items are inserted in a single transaction; generated
// IDs are filled in on success.
// Returns store.ErrInvalidEntity if the user or a product does not exist.
func (s *PostgresOrderStore) Create(ctx context.Context, order *domain.Order) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}

	if err := order.Validate(); err != nil {
		log.Warn("order validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		// No-op after a successful commit.
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Error("failed to roll back transaction", slog.String("error", err.Error()))
		}
	}()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (shipping_address1, shipping_address2, city, zip,
			country, phone, status, total_price, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		order.ShippingAddress1,
		order.ShippingAddress2,
		order.City,
		order.Zip,
		order.Country,
		order.Phone,
		order.Status,
		order.TotalPrice,
		order.UserID,
		order.CreatedAt,
		order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user %d not found", store.ErrInvalidEntity, order.UserID)
		}
		log.Error("failed to create order", slog.String("error", err.Error()))
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		err := tx.QueryRowContext(ctx,
			`INSERT INTO order_items (quantity, product_id, order_id)
			 VALUES ($1, $2, $3) RETURNING id`,
			item.Quantity, item.ProductID, item.OrderID,
		).Scan(&item.ID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: product %d not found",
					store.ErrInvalidEntity, item.ProductID)
			}
			log.Error("failed to create order item",
				slog.String("error", err.Error()),
				slog.Int64("order_id", order.ID))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", slog.String("error", err.Error()))
		return err
	}

	log.Info("order created",
		slog.Int64("order_id", order.ID),
		slog.Int64("user_id", order.UserID),
		slog.Int("items", len(order.Items)))
	return nil
}

// Update implements store.OrderStore.Update
// Items are not touched; only the order row is rewritten.
// Returns store.ErrOrderNotFound if the order does not exist.
func (s *PostgresOrderStore) Update(ctx context.Context, order *domain.Order) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := order.Validate(); err != nil {
		log.Warn("order validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("order_id", order.ID))
		return err
	}

	order.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx,
		`UPDATE orders
		 SET shipping_address1 = $1, shipping_address2 = $2, city = $3,
			zip = $4, country = $5, phone = $6, status = $7,
			total_price = $8, updated_at = $9
		 WHERE id = $10`,
		order.ShippingAddress1,
		order.ShippingAddress2,
		order.City,
		order.Zip,
		order.Country,
		order.Phone,
		order.Status,
		order.TotalPrice,
		order.UpdatedAt,
		order.ID,
	)
	if err != nil {
		log.Error("failed to update order",
			slog.String("error", err.Error()),
			slog.Int64("order_id", order.ID))
		return err
	}

	return requireRowAffected(result, store.ErrOrderNotFound)
}

// Delete implements store.OrderStore.Delete
// Items cascade with the order.
// Returns store.ErrOrderNotFound if the order does not exist.
func (s *PostgresOrderStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete order",
			slog.String("error", err.Error()),
			slog.Int64("order_id", id))
		return err
	}

	if err := requireRowAffected(result, store.ErrOrderNotFound); err != nil {
		return err
	}

	log.Info("order deleted", slog.Int64("order_id", id))
	return nil
}

// Count implements store.OrderStore.Count
func (s *PostgresOrderStore) Count(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		log.Error("failed to count orders", slog.String("error", err.Error()))
		return 0, err
	}

	return count, nil
}

// TotalSales implements store.OrderStore.TotalSales
// Returns 0 when there are no orders.
func (s *PostgresOrderStore) TotalSales(ctx context.Context) (float64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_price), 0) FROM orders`).Scan(&total)
	if err != nil {
		log.Error("failed to sum order totals", slog.String("error", err.Error()))
		return 0, err
	}

	return total, nil
}
