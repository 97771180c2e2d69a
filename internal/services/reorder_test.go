package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edenivgi/bar-stock/internal/models"
)

func level(v float64) *float64 { return &v }

func TestReorderQuantity(t *testing.T) {
	tests := []struct {
		name    string
		stock   float64
		optimal *float64
		want    int
	}{
		{"below optimal", 3, level(10), 7},
		{"at optimal", 10, level(10), 0},
		{"above optimal", 15, level(10), 0},
		{"empty stock", 0, level(6), 6},
		{"no optimal level", 5, nil, 0},
		{"zero optimal", 0, level(0), 0},
		{"negative optimal", 0, level(-2), 0},
		{"fractional shortfall rounds up", 0.5, level(1), 1},
		{"fractional stock", 2.5, level(10), 8},
		{"nan stock counts as zero", math.NaN(), level(4), 4},
		{"nan optimal", 3, level(math.NaN()), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &models.Item{StockQuantity: tt.stock, OptimalStockLevel: tt.optimal}
			assert.Equal(t, tt.want, ReorderQuantity(item))
		})
	}
}

func TestReorderQuantityNilItem(t *testing.T) {
	assert.Equal(t, 0, ReorderQuantity(nil))
}

func TestReorderQuantityMonotonic(t *testing.T) {
	// Less stock never means a smaller order.
	optimal := level(10)
	prev := math.MaxInt
	for stock := 0.0; stock <= 12; stock += 0.5 {
		q := ReorderQuantity(&models.Item{StockQuantity: stock, OptimalStockLevel: optimal})
		assert.LessOrEqual(t, q, prev, "stock %v", stock)
		prev = q
	}
}

func TestBuildReorderLines(t *testing.T) {
	items := []models.Item{
		{ID: 1, Name: "מרלו", Price: 45, StockQuantity: 3, OptimalStockLevel: level(10), Supplier: "יקב"},
		{ID: 2, Name: "ערק", Price: 60, StockQuantity: 10, OptimalStockLevel: level(10), Supplier: "הפצה"},
		{ID: 3, Name: "סודה", Price: 5, StockQuantity: 0, OptimalStockLevel: level(24), Supplier: "  "},
		{ID: 4, Name: "קברנה", Price: 50, StockQuantity: 2, OptimalStockLevel: nil, Supplier: "יקב"},
	}

	lines := BuildReorderLines(items)
	require.Len(t, lines, 2)

	assert.Equal(t, 1, lines[0].ItemID)
	assert.Equal(t, 7, lines[0].Quantity)
	assert.Equal(t, 315.0, lines[0].Subtotal)
	assert.Equal(t, "יקב", lines[0].Supplier)

	assert.Equal(t, 3, lines[1].ItemID)
	assert.Equal(t, 24, lines[1].Quantity)
	assert.Equal(t, "", lines[1].Supplier)
}

func TestBuildReorderLinesEmptyCatalog(t *testing.T) {
	assert.Empty(t, BuildReorderLines(nil))
}
