package services

import (
	"context"
	"log"

	"github.com/edenivgi/bar-stock/internal/models"
)

// Checkout settles the cart into one pending stock order per supplier.
//
// Orders are created sequentially, in the deterministic bucket order,
// so a failure always leaves a well-defined prefix of orders behind.
// There is no multi-order transaction: when bucket k of n fails, the
// k-1 orders already created stay, their lines are dropped from the
// cart, the remaining buckets' lines are kept, and the returned
// CheckoutPartialError says how far we got. Only a fully successful
// run clears the cart.
func (s *CartService) Checkout(ctx context.Context, saver OrderSaver) (int, error) {
	cart, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	if len(cart) == 0 {
		return 0, ErrEmptyCart
	}

	lines := make([]models.OrderLine, 0, len(cart))
	for _, cl := range cart {
		lines = append(lines, models.OrderLine{
			ItemID:   cl.ItemID,
			Name:     cl.ItemName,
			Quantity: cl.Quantity,
			Price:    cl.Price,
			Subtotal: cl.Subtotal,
			Supplier: cl.Supplier,
		})
	}

	groups := GroupBySupplier(lines)
	remaining := cart
	created := 0

	for _, key := range BucketKeys(groups) {
		bucket := groups[key]
		stripped := make([]models.OrderLine, 0, len(bucket))
		inBucket := make(map[int]struct{}, len(bucket))
		for _, line := range bucket {
			stripped = append(stripped, line.WithoutSupplier())
			inBucket[line.ItemID] = struct{}{}
		}

		draft := &models.DraftOrder{
			Items:    stripped,
			Supplier: key,
			Status:   models.OrderStatusPending,
			Type:     models.OrderTypeStock,
		}

		order, saveErr := saver.CreateOrder(ctx, draft)
		if saveErr == nil && order == nil {
			saveErr = ErrOrderNotConfirmed
		}
		if saveErr != nil {
			// Persist the cart without the buckets that already went
			// through, so a retry does not re-order them.
			if err := s.save(ctx, remaining); err != nil {
				log.Printf("Warning: failed to save cart after partial checkout: %v", err)
			}
			return created, &CheckoutPartialError{Created: created, Supplier: key, Err: saveErr}
		}

		created++
		kept := make([]models.CartLine, 0, len(remaining))
		for _, cl := range remaining {
			if _, ok := inBucket[cl.ItemID]; !ok {
				kept = append(kept, cl)
			}
		}
		remaining = kept
	}

	if err := s.Clear(ctx); err != nil {
		return created, err
	}
	return created, nil
}
