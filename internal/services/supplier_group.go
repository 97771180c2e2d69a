package services

import (
	"sort"
	"strings"

	"github.com/edenivgi/bar-stock/internal/models"
)

// NoSupplierKey is the reserved bucket key for lines whose supplier is
// blank. A single shared constant so bucketing, selection and display
// all agree on it.
const NoSupplierKey = "NO_SUPPLIER"

// CombinedOrderLabel is the synthetic supplier put on an order that
// merges several supplier buckets into one purchase order.
const CombinedOrderLabel = "הזמנה משולבת"

// SupplierKey returns the trimmed supplier of a line, or NoSupplierKey
// when it is blank.
func SupplierKey(line models.OrderLine) string {
	if s := strings.TrimSpace(line.Supplier); s != "" {
		return s
	}
	return NoSupplierKey
}

// GroupBySupplier buckets order lines by supplier key. Input order is
// preserved inside each bucket; the grouping is recomputed from
// scratch on every call, never maintained incrementally.
func GroupBySupplier(lines []models.OrderLine) map[string][]models.OrderLine {
	groups := make(map[string][]models.OrderLine)
	for _, line := range lines {
		key := SupplierKey(line)
		groups[key] = append(groups[key], line)
	}
	return groups
}

// BucketKeys returns the bucket keys in their deterministic iteration
// order: sorted, with the no-supplier bucket last.
func BucketKeys(groups map[string][]models.OrderLine) []string {
	keys := make([]string, 0, len(groups))
	hasNoSupplier := false
	for key := range groups {
		if key == NoSupplierKey {
			hasNoSupplier = true
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if hasNoSupplier {
		keys = append(keys, NoSupplierKey)
	}
	return keys
}

// SelectBuckets filters the grouping to the requested keys. Selecting
// nothing is a caller error, not a silent no-op.
func SelectBuckets(groups map[string][]models.OrderLine, selected []string) (map[string][]models.OrderLine, error) {
	picked := make(map[string][]models.OrderLine)
	for _, key := range selected {
		if lines, ok := groups[key]; ok {
			picked[key] = lines
		}
	}
	if len(picked) == 0 {
		return nil, ErrNoSupplierSelected
	}
	return picked, nil
}

// ItemLookup resolves a catalog item by id. It backs supplier-name
// resolution for draft orders; a nil lookup disables it.
type ItemLookup func(itemID int) (*models.Item, bool)

// ToDraftOrders turns selected supplier buckets into draft stock
// orders: one per bucket, or exactly one combined order covering all
// of them. Lines are stripped of their supplier field; the order
// carries the supplier.
//
// For per-supplier orders the display supplier is resolved from the
// bucket's first line's catalog item when the lookup can find it. The
// bucket key may be the no-supplier sentinel while the catalog already
// learned the supplier since the lines were built. The item's flat
// supplier string is authoritative; the bucket key is the fallback.
func ToDraftOrders(groups map[string][]models.OrderLine, combined bool, lookup ItemLookup) []models.DraftOrder {
	keys := BucketKeys(groups)

	if combined {
		var all []models.OrderLine
		for _, key := range keys {
			for _, line := range groups[key] {
				all = append(all, line.WithoutSupplier())
			}
		}
		if len(all) == 0 {
			return nil
		}
		return []models.DraftOrder{{
			Items:    all,
			Supplier: CombinedOrderLabel,
			Status:   models.OrderStatusPending,
			Type:     models.OrderTypeStock,
		}}
	}

	var orders []models.DraftOrder
	for _, key := range keys {
		lines := groups[key]
		if len(lines) == 0 {
			continue
		}
		supplier := key
		if lookup != nil {
			if item, ok := lookup(lines[0].ItemID); ok {
				if s := item.SupplierName(); s != "" {
					supplier = s
				}
			}
		}
		stripped := make([]models.OrderLine, 0, len(lines))
		for _, line := range lines {
			stripped = append(stripped, line.WithoutSupplier())
		}
		orders = append(orders, models.DraftOrder{
			Items:    stripped,
			Supplier: supplier,
			Status:   models.OrderStatusPending,
			Type:     models.OrderTypeStock,
		})
	}
	return orders
}
