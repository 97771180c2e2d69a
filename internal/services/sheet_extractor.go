package services

import (
	"strconv"
	"strings"

	"github.com/edenivgi/bar-stock/internal/models"
)

// Sheet is a decoded spreadsheet: column labels in sheet order, and
// data rows keyed by those labels. Cell positions are not fixed; the
// extractor discovers which column plays which role.
type Sheet struct {
	Columns []string
	Rows    []map[string]string
}

// Column header marker substrings. The bar's count sheets are Hebrew;
// columns are recognized by containment, not exact match, because the
// sheets are hand-edited and labels drift between revisions.
var (
	nameMarkers      = []string{"שם המוצר"}
	supplierMarkers  = []string{"ספק"}
	stockMarkers     = []string{"כמות במלאי", "מלאי קיים"}
	orderHintMarkers = []string{"כמה להזמין"}
)

// categoryMarker maps a substring found in a category divider row to
// the category code it starts. Order matters: first containment wins.
type categoryMarker struct {
	keyword  string
	category string
}

var categoryMarkers = []categoryMarker{
	{"🍷", "wine"},
	{"יין", "wine"},
	{"🍺", "alcohol"},
	{"אלכוהול", "alcohol"},
	{"🥤", "soft_drink"},
	{"משקאות", "soft_drink"},
	{"קולה", "soft_drink"},
	{"מים", "soft_drink"},
	{"אחר", "other"},
}

// Keywords that make a row look like a category divider even without
// an emoji glyph.
var categoryKeywords = []string{"יין", "אלכוהול", "משקאות", "אחר"}

const defaultCategory = "wine"

// SheetExtractor turns a loosely structured count sheet into import
// rows. The header row is discovered, category divider rows update a
// running category cursor, and everything else becomes a product row.
type SheetExtractor struct {
	NameMarkers      []string
	SupplierMarkers  []string
	StockMarkers     []string
	OrderHintMarkers []string
	DefaultCategory  string
}

// NewSheetExtractor creates an extractor with the default Hebrew
// column markers.
func NewSheetExtractor() *SheetExtractor {
	return &SheetExtractor{
		NameMarkers:      nameMarkers,
		SupplierMarkers:  supplierMarkers,
		StockMarkers:     stockMarkers,
		OrderHintMarkers: orderHintMarkers,
		DefaultCategory:  defaultCategory,
	}
}

// columnRoles maps extraction roles to column labels of the sheet.
type columnRoles struct {
	name      string
	supplier  string
	stock     string
	orderHint string
}

// Extract parses the sheet into import rows, preserving source order.
// It returns ErrHeaderNotFound when no row contains a product-name or
// supplier header marker.
func (e *SheetExtractor) Extract(sheet *Sheet) ([]models.ImportRow, error) {
	headerIdx, roles := e.findHeader(sheet)
	if headerIdx < 0 {
		return nil, ErrHeaderNotFound
	}

	rows := make([]models.ImportRow, 0, len(sheet.Rows))
	category := e.DefaultCategory

	for _, raw := range sheet.Rows[headerIdx+1:] {
		name := strings.TrimSpace(raw[roles.name])
		supplier := strings.TrimSpace(raw[roles.supplier])

		// Category divider rows carry a glyph or category keyword in
		// the name column and no supplier; they update the cursor and
		// emit nothing.
		if name != "" && looksLikeCategory(name) && supplier == "" {
			for _, m := range categoryMarkers {
				if strings.Contains(name, m.keyword) {
					category = m.category
					break
				}
			}
			continue
		}

		if name == "" || containsEmoji(name) {
			continue
		}

		quantity, ok := coerceNumber(raw[roles.stock])
		if !ok {
			quantity = 0
		}
		orderHint := 0.0
		if v, ok := coerceNumber(raw[roles.orderHint]); ok && v > 0 {
			orderHint = v
		}

		rows = append(rows, models.ImportRow{
			Name:      name,
			Quantity:  quantity,
			Supplier:  supplier,
			Category:  category,
			OrderHint: orderHint,
		})
	}

	return rows, nil
}

// findHeader scans rows in order for the first one whose cells contain
// a product-name or supplier marker, then assigns column roles from
// that row. First matching column wins per role.
func (e *SheetExtractor) findHeader(sheet *Sheet) (int, columnRoles) {
	for i, row := range sheet.Rows {
		isHeader := false
		for _, cell := range row {
			if containsAny(cell, e.NameMarkers) || containsAny(cell, e.SupplierMarkers) {
				isHeader = true
				break
			}
		}
		if !isHeader {
			continue
		}

		var roles columnRoles
		for _, col := range sheet.Columns {
			cell := row[col]
			switch {
			case roles.name == "" && containsAny(cell, e.NameMarkers):
				roles.name = col
			case roles.supplier == "" && containsAny(cell, e.SupplierMarkers):
				roles.supplier = col
			case roles.stock == "" && containsAny(cell, e.StockMarkers):
				roles.stock = col
			case roles.orderHint == "" && containsAny(cell, e.OrderHintMarkers):
				roles.orderHint = col
			}
		}
		return i, roles
	}
	return -1, columnRoles{}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// looksLikeCategory reports whether a trimmed name cell reads as a
// category divider: an emoji glyph or one of the category keywords.
func looksLikeCategory(name string) bool {
	if containsEmoji(name) {
		return true
	}
	return containsAny(name, categoryKeywords)
}

// containsEmoji reports whether s contains a rune from the pictograph
// blocks the sheets use as category glyphs.
func containsEmoji(s string) bool {
	for _, r := range s {
		if r >= 0x1F300 && r <= 0x1F9FF {
			return true
		}
	}
	return false
}

// coerceNumber parses a cell as a number. Thousands separators are
// stripped; a blank cell is not a number.
func coerceNumber(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
