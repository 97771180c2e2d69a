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
	ErrItemNotFound = errors.New("item not found")
)

const itemColumns = `id, name, category, supplier, price, stock_quantity,
	min_stock_level, optimal_stock_level, is_available, image_url, description,
	tags, created_at, updated_at`

func scanItem(row pgx.Row) (*models.Item, error) {
	item := &models.Item{}
	err := row.Scan(
		&item.ID, &item.Name, &item.Category, &item.Supplier, &item.Price,
		&item.StockQuantity, &item.MinStockLevel, &item.OptimalStockLevel,
		&item.IsAvailable, &item.ImageURL, &item.Description,
		&item.Tags, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	return item, nil
}

// ListItems returns a paginated list of items with optional filtering
func (db *DB) ListItems(ctx context.Context, params *models.ItemListParams) ([]*models.Item, int, error) {
	var whereClauses []string
	var args []interface{}
	argIndex := 1

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("name ILIKE $%d", argIndex))
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}

	if params.Category != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, params.Category)
		argIndex++
	}

	if params.Supplier != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("TRIM(supplier) = $%d", argIndex))
		args = append(args, strings.TrimSpace(params.Supplier))
		argIndex++
	}

	switch params.StockStatus {
	case "inStock":
		whereClauses = append(whereClauses, "stock_quantity > 0")
	case "outOfStock":
		whereClauses = append(whereClauses, "stock_quantity <= 0")
	case "lowStock":
		whereClauses = append(whereClauses, "stock_quantity <= COALESCE(min_stock_level, 0)")
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	// Get total count
	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM items %s", whereClause)
	err := db.Pool.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM items
		%s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, itemColumns, whereClause, argIndex, argIndex+1)

	args = append(args, params.Limit, params.Offset)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}

	return items, total, nil
}

// AllItems returns the full catalog snapshot, in name order. The
// import matcher and the reorder flow work on this snapshot.
func (db *DB) AllItems(ctx context.Context) ([]models.Item, error) {
	query := fmt.Sprintf("SELECT %s FROM items ORDER BY name ASC", itemColumns)
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// GetItemByID retrieves an item by ID
func (db *DB) GetItemByID(ctx context.Context, id int) (*models.Item, error) {
	query := fmt.Sprintf("SELECT %s FROM items WHERE id = $1", itemColumns)
	item, err := scanItem(db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// CreateItem creates a new item
func (db *DB) CreateItem(ctx context.Context, req *models.CreateItemRequest) (*models.Item, error) {
	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	query := fmt.Sprintf(`
		INSERT INTO items (name, category, supplier, price, stock_quantity,
			min_stock_level, optimal_stock_level, is_available, image_url,
			description, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING %s
	`, itemColumns)

	return scanItem(db.Pool.QueryRow(ctx, query,
		strings.TrimSpace(req.Name), req.Category, strings.TrimSpace(req.Supplier),
		req.Price, req.StockQuantity, req.MinStockLevel, req.OptimalStockLevel,
		isAvailable, req.ImageURL, req.Description, tags,
	))
}

// UpdateItem updates an existing item
func (db *DB) UpdateItem(ctx context.Context, id int, req *models.UpdateItemRequest) (*models.Item, error) {
	query := fmt.Sprintf(`
		UPDATE items
		SET name = COALESCE($2, name),
		    category = COALESCE($3, category),
		    supplier = COALESCE($4, supplier),
		    price = COALESCE($5, price),
		    stock_quantity = COALESCE($6, stock_quantity),
		    min_stock_level = COALESCE($7, min_stock_level),
		    optimal_stock_level = COALESCE($8, optimal_stock_level),
		    is_available = COALESCE($9, is_available),
		    image_url = COALESCE($10, image_url),
		    description = COALESCE($11, description),
		    tags = COALESCE($12, tags),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, itemColumns)

	item, err := scanItem(db.Pool.QueryRow(ctx, query,
		id, req.Name, req.Category, req.Supplier, req.Price, req.StockQuantity,
		req.MinStockLevel, req.OptimalStockLevel, req.IsAvailable,
		req.ImageURL, req.Description, req.Tags,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// UpdateItemStock replaces an item's stock count. A non-empty category
// also updates the item's category; blank leaves it alone. This is the
// write path of the stock import.
func (db *DB) UpdateItemStock(ctx context.Context, itemID int, quantity float64, category string) error {
	result, err := db.Pool.Exec(ctx, `
		UPDATE items
		SET stock_quantity = $2,
		    category = COALESCE(NULLIF($3, ''), category),
		    updated_at = NOW()
		WHERE id = $1
	`, itemID, quantity, category)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

// DeleteItem deletes an item by ID
func (db *DB) DeleteItem(ctx context.Context, id int) error {
	result, err := db.Pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}

// ListSuppliers returns the distinct trimmed supplier names in use
func (db *DB) ListSuppliers(ctx context.Context) ([]string, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT DISTINCT TRIM(supplier)
		FROM items
		WHERE TRIM(supplier) <> ''
		ORDER BY 1
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStrings(rows)
}

// ListCategories returns the distinct non-empty categories in use
func (db *DB) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT DISTINCT category
		FROM items
		WHERE category <> ''
		ORDER BY 1
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStrings(rows)
}

func scanStrings(rows pgx.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// GetItemStats returns aggregate statistics for the catalog
func (db *DB) GetItemStats(ctx context.Context) (*models.ItemStats, error) {
	stats := &models.ItemStats{}

	err := db.Pool.QueryRow(ctx, `
		SELECT
			COUNT(*) as total_items,
			COUNT(*) FILTER (WHERE is_available) as available_items,
			COUNT(*) FILTER (WHERE stock_quantity <= COALESCE(min_stock_level, 0)) as low_stock_items,
			COUNT(*) FILTER (WHERE stock_quantity <= 0) as out_of_stock,
			COUNT(DISTINCT TRIM(supplier)) FILTER (WHERE TRIM(supplier) <> '') as supplier_count
		FROM items
	`).Scan(&stats.TotalItems, &stats.AvailableItems, &stats.LowStockItems,
		&stats.OutOfStock, &stats.SupplierCount)

	if err != nil {
		return nil, err
	}

	return stats, nil
}
