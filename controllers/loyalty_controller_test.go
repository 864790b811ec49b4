package controllers

import (
	"net/http"
	"sync"
	"testing"

	"github.com/Priyam-804/WearNest/models"
	"github.com/Priyam-804/WearNest/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedFullStampCard(t *testing.T, db *gorm.DB, userID uint) {
	t.Helper()
	require.NoError(t, db.Create(&models.LoyaltyAccount{
		UserID:       userID,
		Stamps:       models.MaxStamps,
		LoyaltyLevel: models.LoyaltyLevelBronze,
	}).Error)
}

func seedSurpriseTemplate(t *testing.T, db *gorm.DB) models.SurpriseTemplate {
	t.Helper()
	template := models.SurpriseTemplate{
		Name:         "Festive flat 150",
		Type:         models.CouponTypeFlat,
		Value:        150,
		MinOrder:     500,
		ValidityDays: 30,
		Active:       true,
	}
	require.NoError(t, db.Create(&template).Error)
	return template
}

func TestClaimSurpriseWithFullCard(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	seedFullStampCard(t, db, user.ID)
	template := seedSurpriseTemplate(t, db)

	w, resp := invoke(t, ClaimSurprise, http.MethodPost, nil, asUser(user), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	coupon, ok := resp.Data["coupon"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, template.Type, coupon["type"])

	var account models.LoyaltyAccount
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&account).Error)
	assert.Equal(t, 0, account.Stamps, "claim resets the card")
	assert.Equal(t, 1, account.CyclesCompleted)

	var minted models.Coupon
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&minted).Error)
	assert.Equal(t, template.Value, minted.Value)
	assert.Nil(t, minted.UsedAt)
}

func TestClaimSurpriseInsufficientStamps(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	require.NoError(t, db.Create(&models.LoyaltyAccount{
		UserID:       user.ID,
		Stamps:       4,
		LoyaltyLevel: models.LoyaltyLevelBronze,
	}).Error)
	seedSurpriseTemplate(t, db)

	w, resp := invoke(t, ClaimSurprise, http.MethodPost, nil, asUser(user), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, utils.KindInsufficientStamps, resp.Kind)
}

func TestClaimSurpriseTwiceNeedsTwoCycles(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	seedFullStampCard(t, db, user.ID)
	seedSurpriseTemplate(t, db)

	w, _ := invoke(t, ClaimSurprise, http.MethodPost, nil, asUser(user), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := invoke(t, ClaimSurprise, http.MethodPost, nil, asUser(user), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, utils.KindInsufficientStamps, resp.Kind,
		"the emptied card cannot be claimed again")

	var count int64
	db.Model(&models.Coupon{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

// The stamp reset is conditional on the card being exactly full, so two
// racing claims mint exactly one reward.
func TestClaimSurpriseConcurrentSingleWinner(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	seedFullStampCard(t, db, user.ID)
	seedSurpriseTemplate(t, db)

	var wg sync.WaitGroup
	codes := make([]int, 2)
	kinds := make([]string, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w, resp := invoke(t, ClaimSurprise, http.MethodPost, nil, asUser(user), nil)
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
		assert.Equal(t, utils.KindInsufficientStamps, kinds[i])
	}
	assert.Equal(t, 1, winners)

	var account models.LoyaltyAccount
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&account).Error)
	assert.Equal(t, 0, account.Stamps)
	assert.Equal(t, 1, account.CyclesCompleted, "the cycle counter moves once")

	var minted int64
	db.Model(&models.Coupon{}).Where("user_id = ?", user.ID).Count(&minted)
	assert.Equal(t, int64(1), minted, "exactly one reward coupon is minted")
}

func TestGrantStampCapsAtMax(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	seedFullStampCard(t, db, user.ID)

	require.NoError(t, utils.GrantStamp(db, user.ID))

	var account models.LoyaltyAccount
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&account).Error)
	assert.Equal(t, models.MaxStamps, account.Stamps, "a full card absorbs further stamps")
}

func TestLoyaltyLevelAdvancesWithCycles(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	require.NoError(t, db.Create(&models.LoyaltyAccount{
		UserID:          user.ID,
		Stamps:          models.MaxStamps,
		CyclesCompleted: 2,
		LoyaltyLevel:    models.LoyaltyLevelBronze,
	}).Error)
	seedSurpriseTemplate(t, db)

	w, resp := invoke(t, ClaimSurprise, http.MethodPost, nil, asUser(user), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.LoyaltyLevelSilver, resp.Data["level"], "third cycle reaches Silver")
}
