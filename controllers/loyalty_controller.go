package controllers

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Priyam-804/WearNest/config"
	"github.com/Priyam-804/WearNest/models"
	"github.com/Priyam-804/WearNest/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetLoyaltyStatus shows the user's stamp card, tier and claimed rewards.
func GetLoyaltyStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	account, err := utils.GetOrCreateLoyaltyAccount(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to load loyalty account for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch loyalty status", nil)
		return
	}

	var rewards []models.Coupon
	config.DB.Where("user_id = ?", user.ID).Order("created_at desc").Find(&rewards)

	rewardList := make([]gin.H, 0, len(rewards))
	for _, cp := range rewards {
		rewardList = append(rewardList, gin.H{
			"code":       cp.Code,
			"type":       cp.Type,
			"value":      cp.Value,
			"min_order":  fmt.Sprintf("%.2f", cp.MinOrder),
			"expires_at": cp.ExpiresAt.Format("2006-01-02 15:04:05"),
			"used":       cp.UsedAt != nil,
		})
	}

	utils.Success(c, "Loyalty status fetched successfully", gin.H{
		"stamps":           account.Stamps,
		"max_stamps":       models.MaxStamps,
		"cycles_completed": account.CyclesCompleted,
		"level":            account.LoyaltyLevel,
		"claimable":        account.Stamps == models.MaxStamps,
		"rewards":          rewardList,
	})
}

// ClaimSurprise converts a full stamp card into a surprise coupon. The reset
// is a conditional write on stamps being exactly full, so two racing claims
// mint exactly one reward.
func ClaimSurprise(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	account, err := utils.GetOrCreateLoyaltyAccount(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to load loyalty account for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to claim reward", nil)
		return
	}
	if account.Stamps < models.MaxStamps {
		utils.Conflict(c, utils.KindInsufficientStamps,
			fmt.Sprintf("You need %d stamps to claim a surprise, you have %d", models.MaxStamps, account.Stamps))
		return
	}

	var templates []models.SurpriseTemplate
	if err := config.DB.Where("active = ?", true).Find(&templates).Error; err != nil || len(templates) == 0 {
		utils.LogError("No active surprise templates available")
		utils.InternalServerError(c, "No rewards are available right now, please try again later", nil)
		return
	}
	template := templates[rand.Intn(len(templates))]

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to claim reward", nil)
		return
	}

	result := tx.Model(&models.LoyaltyAccount{}).
		Where("user_id = ? AND stamps = ?", user.ID, models.MaxStamps).
		Updates(map[string]interface{}{
			"stamps":           0,
			"cycles_completed": gorm.Expr("cycles_completed + ?", 1),
		})
	if result.Error != nil {
		tx.Rollback()
		utils.LogError("Failed to reset stamp card for user %d: %v", user.ID, result.Error)
		utils.InternalServerError(c, "Failed to claim reward", nil)
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		utils.Conflict(c, utils.KindInsufficientStamps, "Your stamp card is no longer full")
		return
	}

	newCycles := account.CyclesCompleted + 1
	newLevel := models.LoyaltyLevelFor(newCycles)
	if err := tx.Model(&models.LoyaltyAccount{}).
		Where("user_id = ?", user.ID).
		Update("loyalty_level", newLevel).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update loyalty level for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to claim reward", nil)
		return
	}

	code := "SURPRISE-" + strings.ToUpper(uuid.New().String()[:8])
	coupon := models.Coupon{
		Code:        code,
		Description: template.Name,
		Type:        template.Type,
		Value:       template.Value,
		MaxDiscount: template.MaxDiscount,
		MinOrder:    template.MinOrder,
		ExpiresAt:   time.Now().AddDate(0, 0, template.ValidityDays),
		UserID:      &user.ID,
		Active:      true,
	}
	if err := tx.Create(&coupon).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to mint surprise coupon for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to claim reward", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit claim for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to claim reward", nil)
		return
	}

	utils.LogInfo("User %d claimed surprise %s (template %d), now %s", user.ID, code, template.ID, newLevel)
	utils.Success(c, "Surprise reward claimed", gin.H{
		"coupon": gin.H{
			"code":       coupon.Code,
			"type":       coupon.Type,
			"value":      coupon.Value,
			"min_order":  fmt.Sprintf("%.2f", coupon.MinOrder),
			"expires_at": coupon.ExpiresAt.Format("2006-01-02 15:04:05"),
		},
		"cycles_completed": newCycles,
		"level":            newLevel,
	})
}
