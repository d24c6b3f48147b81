package sales

import (
	"errors"
	"time"
)

// SaleItem is one product line within a recorded sale. Name and cost are
// snapshots taken at sale time so later catalog edits cannot rewrite
// historical reports.
type SaleItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	CostAtTime  float64 `json:"costAtTime"`
}

// SaleRecord is a completed checkout.
type SaleRecord struct {
	ID           string     `json:"id"`
	Timestamp    time.Time  `json:"timestamp"`
	Items        []SaleItem `json:"items"`
	TotalCost    float64    `json:"totalCost"`
	TotalRevenue float64    `json:"totalRevenue"`
	TotalProfit  float64    `json:"totalProfit"`
	Note         string     `json:"note,omitempty"`
}

// CartLine is a checkout request line. It exists only for the duration of
// the request and is never persisted.
type CartLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CheckoutInput carries everything needed to record a sale.
type CheckoutInput struct {
	Lines   []CartLine
	Revenue float64
	Note    string
}

// AmendInput carries the only fields a recorded sale allows changing.
// Items and cost are immutable after creation.
type AmendInput struct {
	Timestamp *time.Time
	Revenue   *float64
	Note      *string
}

// ErrEmptyCart indicates a checkout with no lines.
var ErrEmptyCart = errors.New("sales: cart is empty")

// ErrInvalidRevenue indicates a non-positive operator-entered revenue.
var ErrInvalidRevenue = errors.New("sales: revenue must be > 0")

// ErrInvalidQuantity indicates a non-positive line quantity.
var ErrInvalidQuantity = errors.New("sales: quantity must be > 0")
