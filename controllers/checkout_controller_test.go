package controllers

import (
	"net/http"
	"testing"

	"github.com/Priyam-804/WearNest/models"
	"github.com/Priyam-804/WearNest/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrderCOD(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	address := seedAddress(t, db, user.ID)
	variant := seedVariant(t, db, 350, 5)

	body := PlaceOrderRequest{
		OrderDraft: OrderDraft{
			Items:     []DraftItem{{VariantID: variant.ID, Quantity: 2}},
			AddressID: address.ID,
		},
		PaymentMethod: models.PaymentMethodCOD,
	}
	w, resp := invoke(t, PlaceOrder, http.MethodPost, body, asUser(user), nil)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "success", resp.Status)

	var order models.Order
	require.NoError(t, db.Preload("OrderItems").Where("user_id = ?", user.ID).First(&order).Error)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentMethodCOD, order.PaymentMethod)
	assert.False(t, order.IsPaid)
	// 700 subtotal clears free shipping; 5% tax on 700.
	assert.InDelta(t, 700.0, order.Subtotal, 0.001)
	assert.InDelta(t, 0.0, order.Shipping, 0.001)
	assert.InDelta(t, 35.0, order.Tax, 0.001)
	assert.InDelta(t, 735.0, order.TotalPrice, 0.001)

	var updated models.ProductVariant
	require.NoError(t, db.First(&updated, variant.ID).Error)
	assert.Equal(t, 3, updated.Stock)

	var account models.LoyaltyAccount
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&account).Error)
	assert.Equal(t, 1, account.Stamps)
}

func TestPlaceOrderCODAboveLimit(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	address := seedAddress(t, db, user.ID)
	variant := seedVariant(t, db, 600, 5)

	body := PlaceOrderRequest{
		OrderDraft: OrderDraft{
			Items:     []DraftItem{{VariantID: variant.ID, Quantity: 2}},
			AddressID: address.ID,
		},
		PaymentMethod: models.PaymentMethodCOD,
	}
	w, resp := invoke(t, PlaceOrder, http.MethodPost, body, asUser(user), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, utils.KindValidation, resp.Kind)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)

	var updated models.ProductVariant
	require.NoError(t, db.First(&updated, variant.ID).Error)
	assert.Equal(t, 5, updated.Stock, "stock must not be touched by a rejected order")
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	address := seedAddress(t, db, user.ID)
	variant := seedVariant(t, db, 200, 1)

	body := PlaceOrderRequest{
		OrderDraft: OrderDraft{
			Items:     []DraftItem{{VariantID: variant.ID, Quantity: 3}},
			AddressID: address.ID,
		},
		PaymentMethod: models.PaymentMethodCOD,
	}
	w, resp := invoke(t, PlaceOrder, http.MethodPost, body, asUser(user), nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, utils.KindStateConflict, resp.Kind)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestCheckoutSummaryWithCoupon(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	address := seedAddress(t, db, user.ID)
	variant := seedVariant(t, db, 700, 5)
	seedCoupon(t, db, "SAVE10", models.CouponTypePercent, 10, 500, nil)

	body := OrderDraft{
		Items:      []DraftItem{{VariantID: variant.ID, Quantity: 1}},
		AddressID:  address.ID,
		CouponCode: "SAVE10",
	}
	w, resp := invoke(t, GetCheckoutSummary, http.MethodPost, body, asUser(user), nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	// 700 - 70 discount = 630 taxable, 31.50 tax, 661.50 total.
	assert.Equal(t, "70.00", resp.Data["discount"])
	assert.Equal(t, "31.50", resp.Data["tax"])
	assert.Equal(t, "661.50", resp.Data["total_price"])
	assert.Equal(t, true, resp.Data["free_shipping"])
}
