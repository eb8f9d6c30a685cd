package cart

import "github.com/shopspring/decimal"

// Line is one product entry in a session cart. Name, price, and image
// are snapshots taken when the product was added, not live joins.
type Line struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Qty       int             `json:"qty"`
}

// Total recomputes the cart total from scratch. Totals are never cached.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Qty))))
	}
	return total
}
