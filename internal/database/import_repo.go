package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/edenivgi/bar-stock/internal/models"
)

var (
	ErrImportNotFound = errors.New("stock import not found")
)

// CreateStockImport records an uploaded count sheet and its dry-run
// counts.
func (db *DB) CreateStockImport(ctx context.Context, imp *models.StockImport) (*models.StockImport, error) {
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO stock_imports (filename, object_key, total_rows, matched_rows, applied, created_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW())
		RETURNING id, created_at
	`, imp.Filename, imp.ObjectKey, imp.TotalRows, imp.MatchedRows).Scan(&imp.ID, &imp.CreatedAt)
	if err != nil {
		return nil, err
	}
	return imp, nil
}

// MarkStockImportApplied flags an import as applied to the catalog.
func (db *DB) MarkStockImportApplied(ctx context.Context, id int) error {
	result, err := db.Pool.Exec(ctx, `
		UPDATE stock_imports SET applied = TRUE WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrImportNotFound
	}
	return nil
}

// ListStockImports returns the import history, newest first.
func (db *DB) ListStockImports(ctx context.Context, limit int) ([]*models.StockImport, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, filename, COALESCE(object_key, ''), total_rows, matched_rows, applied, created_at
		FROM stock_imports
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var imports []*models.StockImport
	for rows.Next() {
		imp := &models.StockImport{}
		if err := rows.Scan(&imp.ID, &imp.Filename, &imp.ObjectKey, &imp.TotalRows,
			&imp.MatchedRows, &imp.Applied, &imp.CreatedAt); err != nil {
			return nil, err
		}
		imports = append(imports, imp)
	}
	return imports, nil
}

// GetStockImport retrieves one import record.
func (db *DB) GetStockImport(ctx context.Context, id int) (*models.StockImport, error) {
	imp := &models.StockImport{}
	err := db.Pool.QueryRow(ctx, `
		SELECT id, filename, COALESCE(object_key, ''), total_rows, matched_rows, applied, created_at
		FROM stock_imports
		WHERE id = $1
	`, id).Scan(&imp.ID, &imp.Filename, &imp.ObjectKey, &imp.TotalRows,
		&imp.MatchedRows, &imp.Applied, &imp.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrImportNotFound
		}
		return nil, err
	}
	return imp, nil
}
