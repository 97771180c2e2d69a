package models

import "time"

// Order lifecycle statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusApproved  = "approved"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderTypeStock marks orders produced by the stock replenishment flow.
const OrderTypeStock = "stock_order"

// OrderLine is a single line of a stock order: how many units of one
// catalog item to buy. Lines are derived from the reorder calculation
// or copied from the cart and are never mutated after creation.
type OrderLine struct {
	ItemID   int     `json:"item_id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
	Supplier string  `json:"supplier,omitempty"`
}

// WithoutSupplier returns a copy of the line with the supplier field
// cleared. Persisted order lines carry the supplier on the order, not
// on each line.
func (l OrderLine) WithoutSupplier() OrderLine {
	l.Supplier = ""
	return l
}

// DraftOrder is an in-memory order payload ready to be persisted.
type DraftOrder struct {
	Items    []OrderLine `json:"items"`
	Supplier string      `json:"supplier"`
	Status   string      `json:"status"`
	Type     string      `json:"type"`
}

// Order is a persisted stock order.
type Order struct {
	ID        int         `json:"id"`
	Supplier  string      `json:"supplier"`
	Status    string      `json:"status"`
	Type      string      `json:"type"`
	Items     []OrderLine `json:"items"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CartLine is one entry of the durable shopping cart. At most one line
// exists per item; adding an item again increments the quantity.
type CartLine struct {
	ItemID   int     `json:"item_id"`
	ItemName string  `json:"item_name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
	Supplier string  `json:"supplier"`
}

// OrderListParams contains parameters for listing orders
type OrderListParams struct {
	Limit    int
	Offset   int
	Status   string
	Supplier string
}
