package models

import "github.com/shopspring/decimal"

// Product is the authoritative inventory record held by the remote store.
// The client only ever keeps an ephemeral copy of it.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// ProductInput carries the writable fields of a product, used for both
// create drafts and full-replacement updates.
type ProductInput struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Inventory is an ordered snapshot of products as last returned by the
// remote store.
type Inventory []Product

// TotalValue sums price times quantity over the snapshot using exact
// decimal arithmetic, so displayed totals never drift from the per-row
// values.
func (inv Inventory) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, p := range inv {
		line := decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Quantity)))
		total = total.Add(line)
	}
	return total
}
