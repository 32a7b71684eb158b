// Package pricing computes sale prices and order totals. All currency
// arithmetic goes through shopspring/decimal so results round half-up to
// two places without float drift.
package pricing

import (
	"github.com/shopspring/decimal"

	"go-shop/models"
)

var (
	hundred  = decimal.NewFromInt(100)
	minPrice = decimal.RequireFromString("0.01")
)

// Round2 rounds a currency amount half-up to two decimal places.
func Round2(v float64) float64 {
	out, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return out
}

// Compute resolves the sale price of a product from its base price and a
// discount specification.
//
// A percentage discount yields round2(base * (100-pct) / 100), floored at
// 0.01 so a steep discount never produces a zero or negative price. An
// explicit price is used as-is after rounding. With no discount the sale
// price is the base price.
func Compute(basePrice float64, spec models.DiscountSpec) float64 {
	switch spec.Kind {
	case models.DiscountPercentage:
		base := decimal.NewFromFloat(basePrice)
		pct := decimal.NewFromInt(int64(spec.Percentage))
		price := base.Mul(hundred.Sub(pct)).Div(hundred).Round(2)
		if price.LessThan(minPrice) {
			price = minPrice
		}
		out, _ := price.Float64()
		return out
	case models.DiscountExplicitPrice:
		return Round2(spec.Price)
	default:
		return Round2(basePrice)
	}
}

// Total sums price*quantity over order lines, rounded to two places.
func Total(lines []models.OrderLine) float64 {
	sum := decimal.Zero
	for _, line := range lines {
		price := decimal.NewFromFloat(line.Price)
		qty := decimal.NewFromInt(int64(line.Quantity))
		sum = sum.Add(price.Mul(qty))
	}
	out, _ := sum.Round(2).Float64()
	return out
}
