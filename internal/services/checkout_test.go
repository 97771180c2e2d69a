package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edenivgi/bar-stock/internal/models"
)

// fakeOrderSaver records created drafts and can fail or return a soft
// nil result for a given supplier.
type fakeOrderSaver struct {
	created []*models.DraftOrder
	failOn  string
	nilOn   string
	nextID  int
}

func (s *fakeOrderSaver) CreateOrder(_ context.Context, draft *models.DraftOrder) (*models.Order, error) {
	if s.failOn != "" && draft.Supplier == s.failOn {
		return nil, errors.New("insert failed")
	}
	if s.nilOn != "" && draft.Supplier == s.nilOn {
		return nil, nil
	}
	s.created = append(s.created, draft)
	s.nextID++
	return &models.Order{ID: s.nextID, Supplier: draft.Supplier, Items: draft.Items}, nil
}

func checkoutCart(t *testing.T) (*CartService, context.Context) {
	t.Helper()
	ctx := context.Background()
	cart := NewCartService(newMemStateStore())

	_, err := cart.Add(ctx, testItem(1, "מרלו", 45, "יקב"), 2)
	require.NoError(t, err)
	_, err = cart.Add(ctx, testItem(2, "ערק", 60, "הפצה"), 1)
	require.NoError(t, err)
	_, err = cart.Add(ctx, testItem(3, "סודה", 5, ""), 12)
	require.NoError(t, err)

	return cart, ctx
}

func TestCheckoutEmptyCart(t *testing.T) {
	cart := NewCartService(newMemStateStore())
	saver := &fakeOrderSaver{}

	created, err := cart.Checkout(context.Background(), saver)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, created)
	assert.Empty(t, saver.created)
}

func TestCheckoutCreatesOrderPerSupplier(t *testing.T) {
	cart, ctx := checkoutCart(t)
	saver := &fakeOrderSaver{}

	created, err := cart.Checkout(ctx, saver)
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	// Deterministic bucket order: sorted suppliers, sentinel last.
	require.Len(t, saver.created, 3)
	assert.Equal(t, "הפצה", saver.created[0].Supplier)
	assert.Equal(t, "יקב", saver.created[1].Supplier)
	assert.Equal(t, NoSupplierKey, saver.created[2].Supplier)

	for _, draft := range saver.created {
		assert.Equal(t, models.OrderStatusPending, draft.Status)
		assert.Equal(t, models.OrderTypeStock, draft.Type)
		for _, line := range draft.Items {
			assert.Empty(t, line.Supplier)
		}
	}

	// Full success clears the cart.
	lines, err := cart.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCheckoutPartialFailureKeepsRemainder(t *testing.T) {
	cart, ctx := checkoutCart(t)
	saver := &fakeOrderSaver{failOn: "יקב"}

	created, err := cart.Checkout(ctx, saver)
	assert.Equal(t, 1, created)

	var partial *CheckoutPartialError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, 1, partial.Created)
	assert.Equal(t, "יקב", partial.Supplier)

	// The first bucket went through and its lines left the cart; the
	// failed bucket and everything after it are still there.
	require.Len(t, saver.created, 1)
	assert.Equal(t, "הפצה", saver.created[0].Supplier)

	lines, loadErr := cart.Load(ctx)
	require.NoError(t, loadErr)
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].ItemID)
	assert.Equal(t, 3, lines[1].ItemID)
}

func TestCheckoutUnconfirmedOrderIsFailure(t *testing.T) {
	cart, ctx := checkoutCart(t)
	saver := &fakeOrderSaver{nilOn: "הפצה"}

	created, err := cart.Checkout(ctx, saver)
	assert.Zero(t, created)

	var partial *CheckoutPartialError
	require.ErrorAs(t, err, &partial)
	assert.ErrorIs(t, partial.Err, ErrOrderNotConfirmed)

	// Nothing was confirmed, so the whole cart survives.
	lines, loadErr := cart.Load(ctx)
	require.NoError(t, loadErr)
	assert.Len(t, lines, 3)
}

func TestCheckoutRetryAfterPartialFailure(t *testing.T) {
	cart, ctx := checkoutCart(t)

	_, err := cart.Checkout(ctx, &fakeOrderSaver{failOn: "יקב"})
	var partial *CheckoutPartialError
	require.ErrorAs(t, err, &partial)

	// Retry with a healthy saver settles only the remaining buckets.
	saver := &fakeOrderSaver{}
	created, err := cart.Checkout(ctx, saver)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	require.Len(t, saver.created, 2)
	assert.Equal(t, "יקב", saver.created[0].Supplier)
	assert.Equal(t, NoSupplierKey, saver.created[1].Supplier)

	lines, loadErr := cart.Load(ctx)
	require.NoError(t, loadErr)
	assert.Empty(t, lines)
}
