package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderTransitions(t *testing.T) {
	allowed := []struct{ from, to string }{
		{OrderStatusPending, OrderStatusProcessing},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusProcessing, OrderStatusShipped},
		{OrderStatusProcessing, OrderStatusCancelled},
		{OrderStatusShipped, OrderStatusDelivered},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransitionOrder(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to string }{
		{OrderStatusPending, OrderStatusDelivered},
		{OrderStatusShipped, OrderStatusCancelled},
		{OrderStatusDelivered, OrderStatusPending},
		{OrderStatusCancelled, OrderStatusProcessing},
		{OrderStatusDelivered, OrderStatusCancelled},
	}
	for _, tc := range denied {
		assert.False(t, CanTransitionOrder(tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestReturnTransitions(t *testing.T) {
	allowed := []struct{ from, to string }{
		{ReturnStatusRequested, ReturnStatusApproved},
		{ReturnStatusRequested, ReturnStatusRejected},
		{ReturnStatusApproved, ReturnStatusPickupScheduled},
		{ReturnStatusPickupScheduled, ReturnStatusPickedUp},
		{ReturnStatusPickedUp, ReturnStatusRefundProcessing},
		{ReturnStatusRefundProcessing, ReturnStatusRefundCompleted},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransitionReturn(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to string }{
		{ReturnStatusRequested, ReturnStatusPickedUp},
		{ReturnStatusApproved, ReturnStatusRefundCompleted},
		{ReturnStatusRejected, ReturnStatusApproved},
		{ReturnStatusRefundCompleted, ReturnStatusRequested},
		{ReturnStatusPickedUp, ReturnStatusRefundCompleted},
	}
	for _, tc := range denied {
		assert.False(t, CanTransitionReturn(tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestValidReturnReason(t *testing.T) {
	for _, reason := range ReturnReasons {
		assert.True(t, ValidReturnReason(reason))
	}
	assert.False(t, ValidReturnReason("Just because"))
	assert.False(t, ValidReturnReason(""))
}

func TestCouponDiscountFor(t *testing.T) {
	flat := Coupon{Type: CouponTypeFlat, Value: 100}
	assert.InDelta(t, 100.0, flat.DiscountFor(700), 0.001)

	percent := Coupon{Type: CouponTypePercent, Value: 10}
	assert.InDelta(t, 70.0, percent.DiscountFor(700), 0.001)

	capped := Coupon{Type: CouponTypePercent, Value: 50, MaxDiscount: 200}
	assert.InDelta(t, 200.0, capped.DiscountFor(1000), 0.001)
}

func TestLoyaltyLevelFor(t *testing.T) {
	assert.Equal(t, LoyaltyLevelBronze, LoyaltyLevelFor(0))
	assert.Equal(t, LoyaltyLevelBronze, LoyaltyLevelFor(2))
	assert.Equal(t, LoyaltyLevelSilver, LoyaltyLevelFor(3))
	assert.Equal(t, LoyaltyLevelGold, LoyaltyLevelFor(6))
	assert.Equal(t, LoyaltyLevelPlatinum, LoyaltyLevelFor(10))
	assert.Equal(t, LoyaltyLevelPlatinum, LoyaltyLevelFor(25))
}
