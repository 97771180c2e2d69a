package services

import (
	"context"
	"strings"

	"github.com/edenivgi/bar-stock/internal/models"
)

// StockWriter is the catalog-update capability the matcher needs for
// an apply pass. An empty category leaves the item's category alone.
type StockWriter interface {
	UpdateItemStock(ctx context.Context, itemID int, quantity float64, category string) error
}

// CatalogMatcher reconciles extracted count-sheet rows against the
// live catalog. Matching is by exact name equality after trimming
// whitespace, case preserved: the data is Hebrew and there is no
// meaningful case folding to do.
type CatalogMatcher struct{}

// NewCatalogMatcher creates a new catalog matcher.
func NewCatalogMatcher() *CatalogMatcher {
	return &CatalogMatcher{}
}

// Match computes a dry-run report of rows against the catalog without
// touching anything. It is safe to call repeatedly; the same inputs
// produce the same report. Returns ErrNoValidRows on empty input.
func (m *CatalogMatcher) Match(rows []models.ImportRow, catalog []models.Item) (*models.MatchReport, error) {
	if len(rows) == 0 {
		return nil, ErrNoValidRows
	}

	byName := indexByName(catalog)
	report := &models.MatchReport{Unmatched: []models.UnmatchedRow{}}
	report.Summary.TotalRows = len(rows)

	seen := make(map[int]struct{})
	for i, row := range rows {
		item, ok := byName[strings.TrimSpace(row.Name)]
		if !ok {
			report.Unmatched = append(report.Unmatched, models.UnmatchedRow{
				RowIndex:  i,
				InputName: row.Name,
				Quantity:  row.Quantity,
			})
			continue
		}
		report.Summary.MatchedRows++
		seen[item.ID] = struct{}{}
	}

	report.Summary.UniqueMatchedItems = len(seen)
	report.Summary.UnmatchedRows = len(report.Unmatched)
	return report, nil
}

// Apply writes matched rows' quantities into the catalog, replacing
// each matched item's stock count. Quantities come from a physical
// count and are absolute, not deltas. When several rows name the
// same item the last row wins. Unmatched rows never create items.
//
// Writes happen one item at a time with no transaction; on failure the
// catalog stays partially updated and the returned ImportApplyError
// carries how many items were written. Re-running the same apply is
// safe because the semantics are set, not add.
func (m *CatalogMatcher) Apply(ctx context.Context, rows []models.ImportRow, catalog []models.Item, writer StockWriter) (int, error) {
	if len(rows) == 0 {
		return 0, ErrNoValidRows
	}

	byName := indexByName(catalog)

	// Collapse rows to one update per item, preserving the order in
	// which items first appear so the write sequence is deterministic.
	type update struct {
		quantity float64
		category string
	}
	updates := make(map[int]update)
	var order []int
	for _, row := range rows {
		item, ok := byName[strings.TrimSpace(row.Name)]
		if !ok {
			continue
		}
		if _, dup := updates[item.ID]; !dup {
			order = append(order, item.ID)
		}
		updates[item.ID] = update{quantity: row.Quantity, category: row.Category}
	}

	applied := 0
	for _, id := range order {
		u := updates[id]
		if err := writer.UpdateItemStock(ctx, id, u.quantity, u.category); err != nil {
			return applied, &ImportApplyError{Applied: applied, Err: err}
		}
		applied++
	}
	return applied, nil
}

// indexByName maps trimmed item names to catalog items. When two
// catalog items share a name the first one is kept, so a pass touches
// each item at most once.
func indexByName(catalog []models.Item) map[string]models.Item {
	byName := make(map[string]models.Item, len(catalog))
	for _, item := range catalog {
		name := strings.TrimSpace(item.Name)
		if _, ok := byName[name]; !ok {
			byName[name] = item
		}
	}
	return byName
}
