package models

import (
	"strings"
	"time"
)

// Item represents a catalog entry the bar keeps in stock.
type Item struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	Supplier          string    `json:"supplier"`
	Price             float64   `json:"price"`
	StockQuantity     float64   `json:"stock_quantity"`
	MinStockLevel     *float64  `json:"min_stock_level,omitempty"`
	OptimalStockLevel *float64  `json:"optimal_stock_level,omitempty"`
	IsAvailable       bool      `json:"is_available"`
	ImageURL          *string   `json:"image_url,omitempty"`
	Description       *string   `json:"description,omitempty"`
	Tags              []string  `json:"tags"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// SupplierName returns the item's supplier as a trimmed flat string.
// Supplier is free text; records imported from count sheets may carry
// surrounding whitespace.
func (i *Item) SupplierName() string {
	return strings.TrimSpace(i.Supplier)
}

// CreateItemRequest is the request body for creating an item
type CreateItemRequest struct {
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	Supplier          string   `json:"supplier"`
	Price             float64  `json:"price"`
	StockQuantity     float64  `json:"stock_quantity"`
	MinStockLevel     *float64 `json:"min_stock_level,omitempty"`
	OptimalStockLevel *float64 `json:"optimal_stock_level,omitempty"`
	IsAvailable       *bool    `json:"is_available,omitempty"`
	ImageURL          *string  `json:"image_url,omitempty"`
	Description       *string  `json:"description,omitempty"`
	Tags              []string `json:"tags,omitempty"`
}

// UpdateItemRequest is the request body for updating an item
type UpdateItemRequest struct {
	Name              *string  `json:"name,omitempty"`
	Category          *string  `json:"category,omitempty"`
	Supplier          *string  `json:"supplier,omitempty"`
	Price             *float64 `json:"price,omitempty"`
	StockQuantity     *float64 `json:"stock_quantity,omitempty"`
	MinStockLevel     *float64 `json:"min_stock_level,omitempty"`
	OptimalStockLevel *float64 `json:"optimal_stock_level,omitempty"`
	IsAvailable       *bool    `json:"is_available,omitempty"`
	ImageURL          *string  `json:"image_url,omitempty"`
	Description       *string  `json:"description,omitempty"`
	Tags              []string `json:"tags,omitempty"`
}

// ItemListParams contains parameters for listing items
type ItemListParams struct {
	Limit       int
	Offset      int
	Search      string
	Category    string
	Supplier    string
	StockStatus string // "inStock", "outOfStock" or "lowStock"; empty means all
}

// ItemStats contains aggregate statistics for the catalog
type ItemStats struct {
	TotalItems     int `json:"total_items"`
	AvailableItems int `json:"available_items"`
	LowStockItems  int `json:"low_stock_items"`
	OutOfStock     int `json:"out_of_stock"`
	SupplierCount  int `json:"supplier_count"`
}
