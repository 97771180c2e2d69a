package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/edenivgi/bar-stock/internal/models"
)

// cartStorageKey is the single fixed key the cart lives under in the
// durable state store.
const cartStorageKey = "cart"

// StateStore is a durable key-value store for small JSON documents.
// Load returns nil with no error when the key is absent.
type StateStore interface {
	Save(ctx context.Context, key string, value []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
}

// OrderSaver persists a draft order. A nil order with a nil error is a
// soft failure: the order was not confirmed and the caller must
// re-query before assuming anything about it.
type OrderSaver interface {
	CreateOrder(ctx context.Context, draft *models.DraftOrder) (*models.Order, error)
}

// CartService manages the durable shopping cart and settles it into
// supplier orders at checkout. The cart has a single writer (the UI
// flow), so no locking is done here.
type CartService struct {
	store StateStore
}

// NewCartService creates a cart service over the given state store.
func NewCartService(store StateStore) *CartService {
	return &CartService{store: store}
}

// Load reads the cart from storage. A missing entry is an empty cart.
func (s *CartService) Load(ctx context.Context) ([]models.CartLine, error) {
	raw, err := s.store.Load(ctx, cartStorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(raw) == 0 {
		return []models.CartLine{}, nil
	}
	var cart []models.CartLine
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) save(ctx context.Context, cart []models.CartLine) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.store.Save(ctx, cartStorageKey, raw); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Add puts an item in the cart. Adding an item that is already there
// increments its quantity; the subtotal is recomputed either way.
func (s *CartService) Add(ctx context.Context, item *models.Item, quantity int) ([]models.CartLine, error) {
	if quantity < 1 {
		quantity = 1
	}
	cart, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart {
		if cart[i].ItemID == item.ID {
			cart[i].Quantity += quantity
			cart[i].Subtotal = cart[i].Price * float64(cart[i].Quantity)
			found = true
			break
		}
	}
	if !found {
		cart = append(cart, models.CartLine{
			ItemID:   item.ID,
			ItemName: item.Name,
			Price:    item.Price,
			Quantity: quantity,
			Subtotal: item.Price * float64(quantity),
			Supplier: item.SupplierName(),
		})
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets a cart line's quantity. A quantity of zero or
// less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, itemID, quantity int) ([]models.CartLine, error) {
	if quantity <= 0 {
		return s.Remove(ctx, itemID)
	}
	cart, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range cart {
		if cart[i].ItemID == itemID {
			cart[i].Quantity = quantity
			cart[i].Subtotal = cart[i].Price * float64(quantity)
			break
		}
	}
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Remove deletes a cart line by item id.
func (s *CartService) Remove(ctx context.Context, itemID int) ([]models.CartLine, error) {
	cart, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	kept := cart[:0]
	for _, line := range cart {
		if line.ItemID != itemID {
			kept = append(kept, line)
		}
	}
	if err := s.save(ctx, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Clear empties the cart and drops its storage entry.
func (s *CartService) Clear(ctx context.Context) error {
	if err := s.store.Remove(ctx, cartStorageKey); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
