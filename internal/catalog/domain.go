package catalog

import (
	"errors"
	"time"
)

// LowStockThreshold marks products that need restocking.
const LowStockThreshold = 5

// Product represents an item tracked by the inventory ledger.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku"`
	Category    string    `json:"category"`
	CostPrice   float64   `json:"costPrice"`
	Stock       int       `json:"stock"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// LowStock reports whether the product is at or below the restock threshold.
func (p Product) LowStock() bool {
	return p.Stock <= LowStockThreshold
}

// Defaults applied when a product is saved with blank fields.
const (
	DefaultName     = "New Product"
	DefaultSKU      = "SKU-000"
	DefaultCategory = "General"
)

// ErrInsufficientStock triggered when a movement would drive stock negative.
var ErrInsufficientStock = errors.New("catalog: insufficient stock")

// ErrInvalidCost indicates a negative cost price.
var ErrInvalidCost = errors.New("catalog: cost price must be >= 0")

// ErrInvalidStock indicates a negative stock count.
var ErrInvalidStock = errors.New("catalog: stock must be >= 0")
