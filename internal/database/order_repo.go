package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/edenivgi/bar-stock/internal/models"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// CreateOrder persists a draft order with its lines and returns the
// stored order. The insert runs in a transaction so an order never
// exists without its lines.
func (db *DB) CreateOrder(ctx context.Context, draft *models.DraftOrder) (*models.Order, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	status := draft.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	orderType := draft.Type
	if orderType == "" {
		orderType = models.OrderTypeStock
	}

	order := &models.Order{
		Supplier: strings.TrimSpace(draft.Supplier),
		Status:   status,
		Type:     orderType,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (supplier, status, type, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, order.Supplier, order.Status, order.Type).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, line := range draft.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, item_id, name, price, quantity, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, order.ID, line.ItemID, line.Name, line.Price, line.Quantity, line.Subtotal)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order line: %w", err)
		}
		order.Items = append(order.Items, line.WithoutSupplier())
		order.Total += line.Subtotal
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return order, nil
}

// ListOrders returns a paginated list of orders, newest first
func (db *DB) ListOrders(ctx context.Context, params *models.OrderListParams) ([]*models.Order, int, error) {
	var whereClauses []string
	var args []interface{}
	argIndex := 1

	if params.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, params.Status)
		argIndex++
	}
	if params.Supplier != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("supplier = $%d", argIndex))
		args = append(args, params.Supplier)
		argIndex++
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM orders %s", whereClause)
	if err := db.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, supplier, status, type, created_at, updated_at
		FROM orders
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)
	args = append(args, params.Limit, params.Offset)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		o := &models.Order{}
		if err := rows.Scan(&o.ID, &o.Supplier, &o.Status, &o.Type, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}

	for _, o := range orders {
		if err := db.loadOrderItems(ctx, o); err != nil {
			return nil, 0, err
		}
	}

	return orders, total, nil
}

// GetActiveOrders returns orders that are still pending or approved
func (db *DB) GetActiveOrders(ctx context.Context) ([]*models.Order, error) {
	orders, _, err := db.ListOrders(ctx, &models.OrderListParams{Limit: 100, Offset: 0})
	if err != nil {
		return nil, err
	}
	var active []*models.Order
	for _, o := range orders {
		if o.Status == models.OrderStatusPending || o.Status == models.OrderStatusApproved {
			active = append(active, o)
		}
	}
	return active, nil
}

// GetOrderByID retrieves an order with its lines
func (db *DB) GetOrderByID(ctx context.Context, id int) (*models.Order, error) {
	o := &models.Order{}
	err := db.Pool.QueryRow(ctx, `
		SELECT id, supplier, status, type, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&o.ID, &o.Supplier, &o.Status, &o.Type, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if err := db.loadOrderItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (db *DB) loadOrderItems(ctx context.Context, o *models.Order) error {
	rows, err := db.Pool.Query(ctx, `
		SELECT item_id, name, price, quantity, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	o.Items = nil
	o.Total = 0
	for rows.Next() {
		var line models.OrderLine
		if err := rows.Scan(&line.ItemID, &line.Name, &line.Price, &line.Quantity, &line.Subtotal); err != nil {
			return err
		}
		o.Items = append(o.Items, line)
		o.Total += line.Subtotal
	}
	return nil
}

// UpdateOrderStatus moves an order to a new status
func (db *DB) UpdateOrderStatus(ctx context.Context, id int, status string) (*models.Order, error) {
	result, err := db.Pool.Exec(ctx, `
		UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1
	`, id, status)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected() == 0 {
		return nil, ErrOrderNotFound
	}
	return db.GetOrderByID(ctx, id)
}

// DeleteOrder removes an order and its lines
func (db *DB) DeleteOrder(ctx context.Context, id int) error {
	result, err := db.Pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}
