package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edenivgi/bar-stock/internal/models"
)

// memStateStore is an in-memory StateStore for tests.
type memStateStore struct {
	data map[string][]byte
}

func newMemStateStore() *memStateStore {
	return &memStateStore{data: make(map[string][]byte)}
}

func (s *memStateStore) Save(_ context.Context, key string, value []byte) error {
	s.data[key] = value
	return nil
}

func (s *memStateStore) Load(_ context.Context, key string) ([]byte, error) {
	return s.data[key], nil
}

func (s *memStateStore) Remove(_ context.Context, key string) error {
	delete(s.data, key)
	return nil
}

func testItem(id int, name string, price float64, supplier string) *models.Item {
	return &models.Item{ID: id, Name: name, Price: price, Supplier: supplier}
}

func TestCartLoadEmpty(t *testing.T) {
	cart := NewCartService(newMemStateStore())

	lines, err := cart.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartAddIncrementsExistingLine(t *testing.T) {
	ctx := context.Background()
	cart := NewCartService(newMemStateStore())
	merlot := testItem(1, "מרלו", 45, "יקב")

	_, err := cart.Add(ctx, merlot, 2)
	require.NoError(t, err)
	lines, err := cart.Add(ctx, merlot, 3)
	require.NoError(t, err)

	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 225.0, lines[0].Subtotal)
	assert.Equal(t, "יקב", lines[0].Supplier)
}

func TestCartAddDefaultsQuantityToOne(t *testing.T) {
	cart := NewCartService(newMemStateStore())

	lines, err := cart.Add(context.Background(), testItem(1, "מרלו", 45, "יקב"), 0)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestCartSurvivesReload(t *testing.T) {
	ctx := context.Background()
	store := newMemStateStore()

	first := NewCartService(store)
	_, err := first.Add(ctx, testItem(1, "מרלו", 45, "יקב"), 2)
	require.NoError(t, err)

	// A fresh service over the same store sees the same cart.
	second := NewCartService(store)
	lines, err := second.Load(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "מרלו", lines[0].ItemName)
}

func TestCartUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	cart := NewCartService(newMemStateStore())
	_, err := cart.Add(ctx, testItem(1, "מרלו", 45, "יקב"), 2)
	require.NoError(t, err)

	lines, err := cart.UpdateQuantity(ctx, 1, 6)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 6, lines[0].Quantity)
	assert.Equal(t, 270.0, lines[0].Subtotal)
}

func TestCartUpdateQuantityZeroRemoves(t *testing.T) {
	ctx := context.Background()
	cart := NewCartService(newMemStateStore())
	_, err := cart.Add(ctx, testItem(1, "מרלו", 45, "יקב"), 2)
	require.NoError(t, err)

	lines, err := cart.UpdateQuantity(ctx, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	cart := NewCartService(newMemStateStore())
	_, err := cart.Add(ctx, testItem(1, "מרלו", 45, "יקב"), 1)
	require.NoError(t, err)
	_, err = cart.Add(ctx, testItem(2, "ערק", 60, "הפצה"), 1)
	require.NoError(t, err)

	lines, err := cart.Remove(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].ItemID)

	require.NoError(t, cart.Clear(ctx))
	lines, err = cart.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)
}
