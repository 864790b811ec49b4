package controllers

import (
	"fmt"

	"github.com/Priyam-804/WearNest/config"
	"github.com/Priyam-804/WearNest/models"
	"github.com/Priyam-804/WearNest/utils"
	"github.com/gin-gonic/gin"
)

// GetWallet returns the user's balance and recent refund credits.
func GetWallet(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	wallet, err := utils.GetOrCreateWallet(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to load wallet for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch wallet", nil)
		return
	}

	pagination := utils.NewPagination(c)
	var total int64
	config.DB.Model(&models.WalletTransaction{}).Where("wallet_id = ?", wallet.ID).Count(&total)
	pagination.SetTotal(total)

	var transactions []models.WalletTransaction
	if err := config.DB.Where("wallet_id = ?", wallet.ID).
		Order("created_at desc").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&transactions).Error; err != nil {
		utils.LogError("Failed to load wallet transactions for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch wallet", nil)
		return
	}

	list := make([]gin.H, 0, len(transactions))
	for _, t := range transactions {
		entry := gin.H{
			"amount":      fmt.Sprintf("%.2f", t.Amount),
			"type":        t.Type,
			"description": t.Description,
			"reference":   t.Reference,
			"status":      t.Status,
			"created_at":  t.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if t.OrderID != nil {
			entry["order_id"] = *t.OrderID
		}
		list = append(list, entry)
	}

	utils.SendPaginatedResponse(c, gin.H{
		"balance":      fmt.Sprintf("%.2f", wallet.Balance),
		"transactions": list,
	}, pagination)
}
