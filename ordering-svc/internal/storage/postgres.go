package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"restaurant-ordering/ordering-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS restaurants (
		internal_id  UUID PRIMARY KEY,
		id           TEXT NOT NULL UNIQUE,
		name         TEXT NOT NULL,
		banner_image TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS menu_items (
		internal_id UUID PRIMARY KEY,
		id          TEXT NOT NULL,
		name        TEXT NOT NULL,
		description TEXT,
		price       DOUBLE PRECISION NOT NULL,
		category    TEXT NOT NULL,
		image       TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		internal_id    UUID PRIMARY KEY,
		order_number   TEXT NOT NULL UNIQUE,
		items          JSONB NOT NULL DEFAULT '[]',
		subtotal       DOUBLE PRECISION NOT NULL,
		tax            DOUBLE PRECISION NOT NULL,
		total          DOUBLE PRECISION NOT NULL,
		table_number   INTEGER NOT NULL,
		payment_method TEXT NOT NULL CHECK (payment_method IN ('counter', 'googlepay')),
		paid           BOOLEAN NOT NULL,
		user_id        TEXT NOT NULL,
		restaurant_id  TEXT NOT NULL,
		phonenumber    TEXT NOT NULL,
		order_status   TEXT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS orders_restaurant_created_idx ON orders (restaurant_id, created_at)`,
}

const orderColumns = `internal_id, order_number, items, subtotal, tax, total, table_number,
	payment_method, paid, user_id, restaurant_id, phonenumber, order_status, created_at, updated_at`

// PostgresRepository stores each collection as a table; order line items live in a JSONB column.
type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) InsertRestaurants(ctx context.Context, restaurants []domain.Restaurant) ([]domain.Restaurant, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	inserted := make([]domain.Restaurant, 0, len(restaurants))
	for _, rest := range restaurants {
		rest.InternalID = uuid.NewString()
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO restaurants (internal_id, id, name, banner_image) VALUES ($1, $2, $3, $4)",
			rest.InternalID, rest.ID, rest.Name, rest.BannerImage,
		); err != nil {
			return nil, translatePQError(err)
		}
		inserted = append(inserted, rest)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return inserted, nil
}

func (r *PostgresRepository) FindRestaurants(ctx context.Context, id string) ([]domain.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT internal_id, id, name, COALESCE(banner_image, '') FROM restaurants WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	return scanRestaurants(rows)
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT internal_id, id, name, COALESCE(banner_image, '') FROM restaurants")
	if err != nil {
		return nil, err
	}
	return scanRestaurants(rows)
}

func scanRestaurants(rows *sql.Rows) ([]domain.Restaurant, error) {
	defer rows.Close()

	restaurants := make([]domain.Restaurant, 0)
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.InternalID, &rest.ID, &rest.Name, &rest.BannerImage); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}

func (r *PostgresRepository) InsertMenuItems(ctx context.Context, items []domain.MenuItem) ([]domain.MenuItem, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	inserted := make([]domain.MenuItem, 0, len(items))
	for _, item := range items {
		item.InternalID = uuid.NewString()
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO menu_items (internal_id, id, name, description, price, category, image) VALUES ($1, $2, $3, $4, $5, $6, $7)",
			item.InternalID, item.RestaurantID, item.Name, item.Description, item.Price, item.Category, item.Image,
		); err != nil {
			return nil, translatePQError(err)
		}
		inserted = append(inserted, item)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return inserted, nil
}

func (r *PostgresRepository) FindMenuItems(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error) {
	query := `SELECT internal_id, id, name, COALESCE(description, ''), price, category, COALESCE(image, '')
		FROM menu_items WHERE id = $1`
	args := []interface{}{filter.RestaurantID}
	if filter.Category != "" {
		query += " AND category = $2"
		args = append(args, filter.Category)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.MenuItem, 0)
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.InternalID, &item.RestaurantID, &item.Name, &item.Description, &item.Price, &item.Category, &item.Image); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) DistinctCategories(ctx context.Context, restaurantID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT DISTINCT category FROM menu_items WHERE id = $1 ORDER BY category", restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(orderItems(order.Items))
	if err != nil {
		return err
	}

	id := uuid.NewString()
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		id, order.OrderNumber, items, order.Subtotal, order.Tax, order.Total, order.TableNumber,
		order.PaymentMethod, order.Paid, order.UserID, order.RestaurantID, order.PhoneNumber,
		order.OrderStatus, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return translatePQError(err)
	}
	order.InternalID = id
	return nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, invalidOrderID(id)
	}

	row := r.DB.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE internal_id = $1", id)
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}
	return order, err
}

func (r *PostgresRepository) ListPendingOrders(ctx context.Context, restaurantID string) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE restaurant_id = $1 AND order_status <> $2
		ORDER BY created_at ASC`, restaurantID, domain.OrderStatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id, status string, updatedAt time.Time) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, invalidOrderID(id)
	}

	row := r.DB.QueryRowContext(ctx, `
		UPDATE orders SET order_status = $1, updated_at = $2
		WHERE internal_id = $3
		RETURNING `+orderColumns, status, updatedAt, id)
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}
	return order, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		order    domain.Order
		items    []byte
		subtotal float64
		tax      float64
		total    float64
		table    int
		paid     bool
	)
	if err := row.Scan(&order.InternalID, &order.OrderNumber, &items, &subtotal, &tax, &total, &table,
		&order.PaymentMethod, &paid, &order.UserID, &order.RestaurantID, &order.PhoneNumber,
		&order.OrderStatus, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}

	order.Items = []domain.OrderItem{}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, fmt.Errorf("decode items of order %s: %w", order.InternalID, err)
		}
	}
	order.Subtotal, order.Tax, order.Total = &subtotal, &tax, &total
	order.TableNumber, order.Paid = &table, &paid
	return &order, nil
}

func orderItems(items []domain.OrderItem) []domain.OrderItem {
	if items == nil {
		return []domain.OrderItem{}
	}
	return items
}

func translatePQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateKey, pqErr.Message)
	}
	return err
}
