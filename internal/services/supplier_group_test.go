package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edenivgi/bar-stock/internal/models"
)

func groupLines() []models.OrderLine {
	return []models.OrderLine{
		{ItemID: 1, Name: "מרלו", Quantity: 7, Supplier: "יקב"},
		{ItemID: 2, Name: "ערק", Quantity: 2, Supplier: "הפצה"},
		{ItemID: 3, Name: "סודה", Quantity: 24, Supplier: ""},
		{ItemID: 4, Name: "קברנה", Quantity: 3, Supplier: "יקב"},
		{ItemID: 5, Name: "מים", Quantity: 12, Supplier: "   "},
	}
}

func TestGroupBySupplierPartition(t *testing.T) {
	lines := groupLines()
	groups := GroupBySupplier(lines)

	require.Len(t, groups, 3)
	assert.Len(t, groups["יקב"], 2)
	assert.Len(t, groups["הפצה"], 1)
	assert.Len(t, groups[NoSupplierKey], 2)

	// Every line lands in exactly one bucket.
	total := 0
	for _, bucket := range groups {
		total += len(bucket)
	}
	assert.Equal(t, len(lines), total)

	// Input order is preserved inside a bucket.
	assert.Equal(t, 1, groups["יקב"][0].ItemID)
	assert.Equal(t, 4, groups["יקב"][1].ItemID)
}

func TestBucketKeysSentinelLast(t *testing.T) {
	groups := GroupBySupplier(groupLines())
	keys := BucketKeys(groups)

	require.Len(t, keys, 3)
	assert.Equal(t, NoSupplierKey, keys[len(keys)-1])
	assert.Equal(t, []string{"הפצה", "יקב"}, keys[:2])
}

func TestSelectBuckets(t *testing.T) {
	groups := GroupBySupplier(groupLines())

	picked, err := SelectBuckets(groups, []string{"יקב", "לא קיים"})
	require.NoError(t, err)
	require.Len(t, picked, 1)
	assert.Len(t, picked["יקב"], 2)
}

func TestSelectBucketsNoneSelected(t *testing.T) {
	groups := GroupBySupplier(groupLines())

	_, err := SelectBuckets(groups, nil)
	assert.ErrorIs(t, err, ErrNoSupplierSelected)

	_, err = SelectBuckets(groups, []string{"לא קיים"})
	assert.ErrorIs(t, err, ErrNoSupplierSelected)
}

func TestToDraftOrdersPerSupplier(t *testing.T) {
	groups := GroupBySupplier(groupLines())

	orders := ToDraftOrders(groups, false, nil)
	require.Len(t, orders, 3)

	assert.Equal(t, "הפצה", orders[0].Supplier)
	assert.Equal(t, "יקב", orders[1].Supplier)
	assert.Equal(t, NoSupplierKey, orders[2].Supplier)

	for _, order := range orders {
		assert.Equal(t, models.OrderStatusPending, order.Status)
		assert.Equal(t, models.OrderTypeStock, order.Type)
		for _, line := range order.Items {
			assert.Empty(t, line.Supplier)
		}
	}
}

func TestToDraftOrdersCombined(t *testing.T) {
	groups := GroupBySupplier(groupLines())

	orders := ToDraftOrders(groups, true, nil)
	require.Len(t, orders, 1)

	assert.Equal(t, CombinedOrderLabel, orders[0].Supplier)
	assert.Len(t, orders[0].Items, 5)
	for _, line := range orders[0].Items {
		assert.Empty(t, line.Supplier)
	}
}

func TestToDraftOrdersResolvesSupplierFromCatalog(t *testing.T) {
	// The catalog learned a supplier for item 3 after the lines were
	// built; the sentinel bucket resolves to the item's supplier.
	lines := []models.OrderLine{{ItemID: 3, Name: "סודה", Quantity: 24, Supplier: ""}}
	groups := GroupBySupplier(lines)

	lookup := func(itemID int) (*models.Item, bool) {
		if itemID == 3 {
			return &models.Item{ID: 3, Supplier: "הפצה"}, true
		}
		return nil, false
	}

	orders := ToDraftOrders(groups, false, lookup)
	require.Len(t, orders, 1)
	assert.Equal(t, "הפצה", orders[0].Supplier)
}

func TestToDraftOrdersEmpty(t *testing.T) {
	assert.Nil(t, ToDraftOrders(map[string][]models.OrderLine{}, false, nil))
	assert.Nil(t, ToDraftOrders(map[string][]models.OrderLine{}, true, nil))
}
