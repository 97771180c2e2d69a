package services

import (
	"math"

	"github.com/edenivgi/bar-stock/internal/models"
)

// ReorderQuantity returns how many whole units of the item should be
// ordered to reach its optimal stock level.
//
// An absent, zero or negative optimal level means the item has no
// replenishment target and never needs ordering, whatever its current
// stock. Missing or NaN stock counts as zero. A fractional shortfall
// rounds up: you cannot order half a bottle. No minimum-1 floor is
// applied beyond that ceiling.
func ReorderQuantity(item *models.Item) int {
	if item == nil || item.OptimalStockLevel == nil {
		return 0
	}
	optimal := *item.OptimalStockLevel
	if math.IsNaN(optimal) || optimal <= 0 {
		return 0
	}

	current := item.StockQuantity
	if math.IsNaN(current) {
		current = 0
	}

	raw := optimal - current
	if raw <= 0 {
		return 0
	}
	return int(math.Ceil(raw))
}

// BuildReorderLines turns the catalog into order lines for every item
// that needs replenishing. Items with nothing to order produce no
// line. Source order is preserved.
func BuildReorderLines(items []models.Item) []models.OrderLine {
	var lines []models.OrderLine
	for i := range items {
		item := &items[i]
		quantity := ReorderQuantity(item)
		if quantity <= 0 {
			continue
		}
		lines = append(lines, models.OrderLine{
			ItemID:   item.ID,
			Name:     item.Name,
			Quantity: quantity,
			Price:    item.Price,
			Subtotal: item.Price * float64(quantity),
			Supplier: item.SupplierName(),
		})
	}
	return lines
}
