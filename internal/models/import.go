package models

import "time"

// ImportRow is a single product row extracted from an uploaded count
// sheet. Rows are transient: they are matched against the catalog and
// discarded.
type ImportRow struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Supplier  string  `json:"supplier,omitempty"`
	Category  string  `json:"category,omitempty"`
	OrderHint float64 `json:"to_order,omitempty"`
}

// MatchSummary totals one dry-run pass of import rows over the catalog.
type MatchSummary struct {
	TotalRows          int `json:"total_rows"`
	MatchedRows        int `json:"matched_rows"`
	UniqueMatchedItems int `json:"unique_matched_items"`
	UnmatchedRows      int `json:"unmatched_rows"`
}

// UnmatchedRow describes an import row whose name matched no catalog
// item. RowIndex is the position in the extracted row list.
type UnmatchedRow struct {
	RowIndex  int     `json:"row_index"`
	InputName string  `json:"input_name"`
	Quantity  float64 `json:"quantity"`
}

// MatchReport is the result of a dry-run match. It is recomputed on
// every call and never persisted.
type MatchReport struct {
	Summary   MatchSummary   `json:"summary"`
	Unmatched []UnmatchedRow `json:"unmatched"`
}

// StockImport is an audit record of one uploaded count sheet.
type StockImport struct {
	ID          int       `json:"id"`
	Filename    string    `json:"filename"`
	ObjectKey   string    `json:"object_key,omitempty"`
	TotalRows   int       `json:"total_rows"`
	MatchedRows int       `json:"matched_rows"`
	Applied     bool      `json:"applied"`
	CreatedAt   time.Time `json:"created_at"`
}

// ImportApplyRequest carries the rows confirmed from a preview back to
// the apply endpoint.
type ImportApplyRequest struct {
	ImportID int         `json:"import_id"`
	Rows     []ImportRow `json:"rows"`
}

// ImportPreviewResponse is returned by the stock import preview: the
// extracted rows (echoed back for the apply step) and the dry-run
// report.
type ImportPreviewResponse struct {
	ImportID int         `json:"import_id"`
	Filename string      `json:"filename"`
	Rows     []ImportRow `json:"rows"`
	Report   MatchReport `json:"report"`
}
