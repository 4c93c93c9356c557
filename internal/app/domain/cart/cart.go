package cart

import "github.com/nance-store/storefront/internal/app/domain/product"

// Line is one cart entry: a product paired with a purchase quantity. The
// product fields are embedded so the serialized form stays flat, matching
// the persisted cart slot layout.
type Line struct {
	product.Product
	Quantity int `json:"quantity"`
}

// Valid reports whether the line satisfies the cart invariant
// 1 <= quantity <= stock.
func (l Line) Valid() bool {
	return l.ID != "" && l.Quantity >= 1 && l.Quantity <= l.Stock
}

// Subtotal is the line's contribution to the cart total.
func (l Line) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// TotalItems sums the quantities across all lines.
func TotalItems(lines []Line) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice sums price*quantity across all lines.
func TotalPrice(lines []Line) float64 {
	total := 0.0
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}
