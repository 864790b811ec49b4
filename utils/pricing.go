package utils

import "math"

// PricedItem is the minimal view of a line item the pricing engine needs.
type PricedItem struct {
	UnitPrice float64
	Quantity  int
}

// Totals is the server-computed money breakdown for an order.
type Totals struct {
	Subtotal float64
	Shipping float64
	Tax      float64
	Discount float64
	Total    float64
}

// Round2 rounds to two decimal places, the storefront's money precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeTotals derives subtotal, shipping, tax and total from line items and
// a discount. Pure and deterministic: this runs on every order creation and
// every coupon application, and its result always overrides client figures.
//
// The discount is applied before tax and the taxable base never goes below
// zero, so a coupon can make an order free but never produce negative tax.
func ComputeTotals(items []PricedItem, shippingThreshold, shippingCost, taxRate, discount float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	shipping := shippingCost
	if subtotal >= shippingThreshold {
		shipping = 0
	}

	taxableBase := subtotal + shipping - discount
	if taxableBase < 0 {
		taxableBase = 0
	}
	tax := taxableBase * taxRate

	return Totals{
		Subtotal: Round2(subtotal),
		Shipping: Round2(shipping),
		Tax:      Round2(tax),
		Discount: Round2(discount),
		Total:    Round2(taxableBase + tax),
	}
}
