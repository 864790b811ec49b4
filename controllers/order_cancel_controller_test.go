package controllers

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/Priyam-804/WearNest/models"
	"github.com/Priyam-804/WearNest/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cancelOrder(t *testing.T, user models.User, orderID uint) (int, testResponse) {
	t.Helper()
	w, resp := invoke(t, CancelOrder, http.MethodPut,
		CancelOrderRequest{Reason: "Ordered by mistake"}, asUser(user), idParam(orderID))
	return w.Code, resp
}

func TestCancelUnpaidOrderWithinWindow(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	order := seedOrder(t, db, user, func(o *models.Order) {
		o.CreatedAt = hoursAgo(2)
	})

	code, resp := cancelOrder(t, user, order.ID)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", resp.Status)

	var updated models.Order
	require.NoError(t, db.First(&updated, order.ID).Error)
	assert.Equal(t, models.OrderStatusCancelled, updated.Status)
	assert.Equal(t, "Ordered by mistake", updated.CancellationReason)
	assert.NotNil(t, updated.CancellationDate)

	var variant models.ProductVariant
	require.NoError(t, db.First(&variant, order.OrderItems[0].VariantID).Error)
	assert.Equal(t, 11, variant.Stock, "cancelled quantity goes back on the shelf")
}

func TestCancelUnpaidOrderWindowClosed(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	order := seedOrder(t, db, user, func(o *models.Order) {
		o.CreatedAt = hoursAgo(25)
	})

	code, resp := cancelOrder(t, user, order.ID)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, utils.KindCancelWindowClosed, resp.Kind)

	var updated models.Order
	require.NoError(t, db.First(&updated, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, updated.Status)
}

func TestCancelPaidOrderRefundsWallet(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	paidAt := time.Now().Add(-30 * time.Minute)
	order := seedOrder(t, db, user, func(o *models.Order) {
		o.CreatedAt = paidAt
		o.PaymentMethod = models.PaymentMethodOnline
		o.IsPaid = true
		o.PaidAt = &paidAt
		o.Status = models.OrderStatusProcessing
	})

	code, resp := cancelOrder(t, user, order.ID)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, resp.Data["refund"])

	wallet, err := utils.GetOrCreateWallet(db, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, order.TotalPrice, wallet.Balance, 0.001)

	var updated models.Order
	require.NoError(t, db.First(&updated, order.ID).Error)
	assert.Equal(t, models.RefundStatusCompleted, updated.RefundStatus)
	assert.InDelta(t, order.TotalPrice, updated.RefundAmount, 0.001)
	assert.NotEmpty(t, updated.RefundTransactionID)
}

func TestCancelPaidOrderTighterWindow(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	paidAt := hoursAgo(2)
	order := seedOrder(t, db, user, func(o *models.Order) {
		o.CreatedAt = paidAt
		o.PaymentMethod = models.PaymentMethodOnline
		o.IsPaid = true
		o.PaidAt = &paidAt
		o.Status = models.OrderStatusProcessing
	})

	code, resp := cancelOrder(t, user, order.ID)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, utils.KindCancelWindowClosed, resp.Kind,
		"paid orders get one hour, not twenty four")
}

// Two racing cancels resolve to exactly one winner; the loser re-reads the
// order and reports its real state instead of a vague concurrency error.
func TestCancelOrderConcurrentSingleWinner(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	order := seedOrder(t, db, user, func(o *models.Order) {
		o.CreatedAt = hoursAgo(2)
	})

	var wg sync.WaitGroup
	codes := make([]int, 2)
	kinds := make([]string, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w, resp := invoke(t, CancelOrder, http.MethodPut,
				CancelOrderRequest{Reason: "Ordered by mistake"}, asUser(user), idParam(order.ID))
			codes[i] = w.Code
			kinds[i] = resp.Kind
		}(i)
	}
	wg.Wait()

	winners := 0
	for i := range codes {
		if codes[i] == http.StatusOK {
			winners++
			continue
		}
		assert.Equal(t, http.StatusConflict, codes[i])
		assert.Equal(t, utils.KindStateConflict, kinds[i],
			"the losing cancel should see the cancelled order, not be told to refresh")
	}
	assert.Equal(t, 1, winners)

	var updated models.Order
	require.NoError(t, db.First(&updated, order.ID).Error)
	assert.Equal(t, models.OrderStatusCancelled, updated.Status)

	var variant models.ProductVariant
	require.NoError(t, db.First(&variant, order.OrderItems[0].VariantID).Error)
	assert.Equal(t, 11, variant.Stock, "stock released exactly once")
}

func TestCancelShippedOrderRejected(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	order := seedOrder(t, db, user, func(o *models.Order) {
		o.Status = models.OrderStatusShipped
	})

	code, resp := cancelOrder(t, user, order.ID)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, utils.KindStateConflict, resp.Kind)
}
