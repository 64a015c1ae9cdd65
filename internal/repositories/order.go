package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"luxfur/internal/models"
)

// OrderRepository handles order data operations.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists an order and all of its items in a single transaction.
// Lines carry the unit price captured in the cart; the catalog is not
// consulted here. Either the order and every item are written, or nothing is.
func (r *OrderRepository) Create(req *models.OrderCreateRequest, lines []models.CartLine) (*models.Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (user_id, first_name, last_name, email, phone, address, postal_code, city, paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, user_id, first_name, last_name, email, phone, address, postal_code, city, paid, created_at, updated_at`

	now := time.Now()
	order := &models.Order{}

	err = tx.QueryRow(
		query,
		req.UserID,
		req.FirstName,
		req.LastName,
		req.Email,
		req.Phone,
		req.Address,
		req.PostalCode,
		req.City,
		false,
		now,
		now,
	).Scan(
		&order.ID,
		&order.UserID,
		&order.FirstName,
		&order.LastName,
		&order.Email,
		&order.Phone,
		&order.Address,
		&order.PostalCode,
		&order.City,
		&order.Paid,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	for _, line := range lines {
		item := models.OrderItem{
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
		err = tx.QueryRow(itemQuery, order.ID, line.ProductID, line.Quantity, line.UnitPrice).Scan(&item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order creation: %w", err)
	}

	return order, nil
}

// GetByID retrieves an order with its items.
func (r *OrderRepository) GetByID(id int) (*models.Order, error) {
	query := `
		SELECT id, user_id, first_name, last_name, email, phone, address, postal_code, city, paid, created_at, updated_at
		FROM orders
		WHERE id = $1`

	order := &models.Order{}
	err := r.db.QueryRow(query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.FirstName,
		&order.LastName,
		&order.Email,
		&order.Phone,
		&order.Address,
		&order.PostalCode,
		&order.City,
		&order.Paid,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.getItems(id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// GetByUser retrieves a page of the user's orders, newest first, along with
// the total count.
func (r *OrderRepository) GetByUser(userID, limit, offset int) ([]*models.Order, int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := `
		SELECT id, user_id, first_name, last_name, email, phone, address, postal_code, city, paid, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.FirstName,
			&order.LastName,
			&order.Email,
			&order.Phone,
			&order.Address,
			&order.PostalCode,
			&order.City,
			&order.Paid,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// MarkPaid flips the order's paid flag. Contact fields stay untouched.
func (r *OrderRepository) MarkPaid(id int) error {
	result, err := r.db.Exec(
		`UPDATE orders SET paid = TRUE, updated_at = $1 WHERE id = $2`,
		time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	if affected == 0 {
		return models.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) getItems(orderID int) ([]models.OrderItem, error) {
	query := `
		SELECT i.id, i.order_id, i.product_id, p.name, i.quantity, i.unit_price
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY i.id`

	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		item := models.OrderItem{}
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
