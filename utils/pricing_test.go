package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalsFlatShippingBelowThreshold(t *testing.T) {
	totals := ComputeTotals(
		[]PricedItem{{UnitPrice: 250, Quantity: 2}},
		FreeShippingThreshold, FlatShippingCost, TaxRate, 0)

	assert.InDelta(t, 500.0, totals.Subtotal, 0.001)
	assert.InDelta(t, 49.0, totals.Shipping, 0.001)
	assert.InDelta(t, 27.45, totals.Tax, 0.001)
	assert.InDelta(t, 576.45, totals.Total, 0.001)
}

func TestComputeTotalsFreeShippingAtThreshold(t *testing.T) {
	totals := ComputeTotals(
		[]PricedItem{{UnitPrice: 599, Quantity: 1}},
		FreeShippingThreshold, FlatShippingCost, TaxRate, 0)

	assert.InDelta(t, 0.0, totals.Shipping, 0.001, "shipping is free exactly at the threshold")
	assert.InDelta(t, 628.95, totals.Total, 0.001)
}

func TestComputeTotalsDiscountBeforeTax(t *testing.T) {
	// A 700 rupee order with a 10 percent coupon: tax applies to the
	// discounted base of 630, not to 700.
	totals := ComputeTotals(
		[]PricedItem{{UnitPrice: 700, Quantity: 1}},
		FreeShippingThreshold, FlatShippingCost, TaxRate, 70)

	assert.InDelta(t, 700.0, totals.Subtotal, 0.001)
	assert.InDelta(t, 0.0, totals.Shipping, 0.001)
	assert.InDelta(t, 70.0, totals.Discount, 0.001)
	assert.InDelta(t, 31.50, totals.Tax, 0.001)
	assert.InDelta(t, 661.50, totals.Total, 0.001)
}

func TestComputeTotalsDiscountFloorsAtZero(t *testing.T) {
	totals := ComputeTotals(
		[]PricedItem{{UnitPrice: 100, Quantity: 1}},
		FreeShippingThreshold, FlatShippingCost, TaxRate, 500)

	assert.InDelta(t, 0.0, totals.Tax, 0.001, "no negative taxable base")
	assert.InDelta(t, 0.0, totals.Total, 0.001, "a big coupon makes the order free, never negative")
}

func TestComputeTotalsEmptyOrder(t *testing.T) {
	totals := ComputeTotals(nil, FreeShippingThreshold, FlatShippingCost, TaxRate, 0)
	assert.InDelta(t, 0.0, totals.Subtotal, 0.001)
	assert.InDelta(t, FlatShippingCost, totals.Shipping, 0.001)
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 1.23, Round2(1.2349), 0.0001)
	assert.InDelta(t, 1.24, Round2(1.235), 0.0001)
	assert.InDelta(t, -1.23, Round2(-1.2349), 0.0001)
}
