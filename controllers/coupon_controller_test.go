package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/Priyam-804/WearNest/models"
	"github.com/Priyam-804/WearNest/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyCoupon(t *testing.T, user models.User, code string, total float64) (int, testResponse) {
	t.Helper()
	w, resp := invoke(t, ApplyCoupon, http.MethodPost,
		ApplyCouponRequest{Code: code, OrderTotal: total}, asUser(user), nil)
	return w.Code, resp
}

func TestApplyCouponValid(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	seedCoupon(t, db, "FLAT100", models.CouponTypeFlat, 100, 500, nil)

	code, resp := applyCoupon(t, user, "flat100", 700)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "100.00", resp.Data["discount"])
}

func TestApplyCouponPercentCapped(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	coupon := seedCoupon(t, db, "BIG50", models.CouponTypePercent, 50, 0, nil)
	require.NoError(t, db.Model(&coupon).Update("max_discount", 200).Error)

	code, resp := applyCoupon(t, user, "BIG50", 1000)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "200.00", resp.Data["discount"], "percent discount must respect the cap")
}

func TestApplyCouponNotFound(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	code, resp := applyCoupon(t, user, "NOPE", 700)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, utils.KindCouponNotFound, resp.Kind)
}

func TestApplyCouponExpired(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	coupon := seedCoupon(t, db, "OLD", models.CouponTypeFlat, 50, 0, nil)
	require.NoError(t, db.Model(&coupon).Update("expires_at", time.Now().Add(-time.Hour)).Error)

	code, resp := applyCoupon(t, user, "OLD", 700)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, utils.KindCouponExpired, resp.Kind)
}

func TestApplyCouponAlreadyUsed(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	coupon := seedCoupon(t, db, "SPENT", models.CouponTypeFlat, 50, 0, nil)
	require.NoError(t, db.Model(&coupon).Update("used_at", time.Now()).Error)

	code, resp := applyCoupon(t, user, "SPENT", 700)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, utils.KindCouponAlreadyUsed, resp.Kind)
}

func TestApplyCouponMinOrderNotMet(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	seedCoupon(t, db, "MIN500", models.CouponTypeFlat, 50, 500, nil)

	code, resp := applyCoupon(t, user, "MIN500", 300)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, utils.KindMinOrderNotMet, resp.Kind)
}

func TestApplyCouponBoundToAnotherUser(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db)
	other := seedUser(t, db)
	seedCoupon(t, db, "PERSONAL", models.CouponTypeFlat, 50, 0, &owner.ID)

	code, resp := applyCoupon(t, other, "PERSONAL", 700)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, utils.KindCouponNotFound, resp.Kind, "bound coupons look nonexistent to other users")

	okCode, _ := applyCoupon(t, owner, "PERSONAL", 700)
	assert.Equal(t, http.StatusOK, okCode)
}

func TestConsumeCouponOnlyOnce(t *testing.T) {
	db := setupTestDB(t)
	coupon := seedCoupon(t, db, "ONCE", models.CouponTypeFlat, 50, 0, nil)

	require.NoError(t, consumeCoupon(db, coupon.ID))
	err := consumeCoupon(db, coupon.ID)
	require.Error(t, err)
	assert.True(t, utils.HasKind(err, utils.KindCouponAlreadyUsed),
		"the second spend must lose the conditional write")
}
