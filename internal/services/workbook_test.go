package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDecodeWorkbook(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"ספירת מלאי", "", "", ""},
		{"שם המוצר", "ספק", "כמות במלאי", "כמה להזמין"},
		{"מרלו", "יקב", 3, 7},
	})

	sheet, err := DecodeWorkbook(data)
	require.NoError(t, err)

	// The first physical row supplies labels; blank cells get
	// placeholders.
	require.Len(t, sheet.Columns, 4)
	assert.Equal(t, "ספירת מלאי", sheet.Columns[0])
	assert.Equal(t, "__EMPTY_1", sheet.Columns[1])

	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "שם המוצר", sheet.Rows[0][sheet.Columns[0]])
	assert.Equal(t, "מרלו", sheet.Rows[1][sheet.Columns[0]])
	assert.Equal(t, "3", sheet.Rows[1][sheet.Columns[2]])
}

func TestDecodeWorkbookDeduplicatesLabels(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"ספק", "ספק", ""},
		{"a", "b", "c"},
	})

	sheet, err := DecodeWorkbook(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"ספק", "ספק_1", "__EMPTY_2"}, sheet.Columns)
	assert.Equal(t, "a", sheet.Rows[0]["ספק"])
	assert.Equal(t, "b", sheet.Rows[0]["ספק_1"])
}

func TestDecodeWorkbookFeedsExtractor(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"גיליון ספירה", "", ""},
		{"שם המוצר", "ספק", "מלאי קיים"},
		{"🍺 אלכוהול", "", ""},
		{"ערק עלית", "הפצה בעמ", 2},
	})

	sheet, err := DecodeWorkbook(data)
	require.NoError(t, err)

	rows, err := NewSheetExtractor().Extract(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ערק עלית", rows[0].Name)
	assert.Equal(t, 2.0, rows[0].Quantity)
	assert.Equal(t, "alcohol", rows[0].Category)
}

func TestDecodeWorkbookGarbage(t *testing.T) {
	_, err := DecodeWorkbook([]byte("not an xlsx file"))
	assert.Error(t, err)
}
