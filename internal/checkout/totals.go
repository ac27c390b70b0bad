package checkout

import "github.com/shopspring/decimal"

// Totals is the priced breakdown of an order. Discount and tax are reserved
// at zero; coupons hook in here later.
type Totals struct {
	Subtotal     decimal.Decimal
	ShippingCost decimal.Decimal
	Discount     decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
}

// Subtotal sums unit price times quantity over validated lines. Pure decimal
// arithmetic; a float would drift on currency.
func Subtotal(items []ValidatedLineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return subtotal
}

// CalculateTotals derives the order totals from validated lines and the
// resolved shipping cost. Deterministic, so totals can be re-derived for
// auditing.
func CalculateTotals(items []ValidatedLineItem, shippingCost decimal.Decimal) Totals {
	subtotal := Subtotal(items)
	return Totals{
		Subtotal:     subtotal,
		ShippingCost: shippingCost,
		Discount:     decimal.Zero,
		Tax:          decimal.Zero,
		Total:        subtotal.Add(shippingCost),
	}
}
