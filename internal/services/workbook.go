package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// DecodeWorkbook reads the first worksheet of an xlsx file into the
// label-keyed row structure the extractor works on. The first physical
// row of the sheet supplies the column labels; the real header row is
// discovered later by the extractor, because the bar's sheets carry
// title rows above it.
func DecodeWorkbook(data []byte) (*Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return &Sheet{}, nil
	}

	// Rows come back with trailing blank cells trimmed, so the label
	// row is padded out to the widest row of the sheet.
	width := 0
	for _, raw := range rows {
		if len(raw) > width {
			width = len(raw)
		}
	}
	columns := columnLabels(rows[0], width)
	sheet := &Sheet{Columns: columns, Rows: make([]map[string]string, 0, len(rows)-1)}
	for _, raw := range rows[1:] {
		row := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(raw) {
				row[col] = raw[i]
			} else {
				row[col] = ""
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

// columnLabels turns the first sheet row into unique column labels,
// inventing placeholders for blank, missing or duplicate cells.
func columnLabels(first []string, width int) []string {
	labels := make([]string, 0, width)
	seen := make(map[string]struct{}, width)
	for i := 0; i < width; i++ {
		base := ""
		if i < len(first) {
			base = first[i]
		}
		if base == "" {
			base = fmt.Sprintf("__EMPTY_%d", i)
		}
		label := base
		for n := 1; ; n++ {
			if _, dup := seen[label]; !dup {
				break
			}
			label = fmt.Sprintf("%s_%d", base, n)
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	return labels
}
