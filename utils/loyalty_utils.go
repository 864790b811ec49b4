package utils

import (
	"github.com/Priyam-804/WearNest/models"
	"gorm.io/gorm"
)

// GetOrCreateLoyaltyAccount retrieves or creates the loyalty account for a user
func GetOrCreateLoyaltyAccount(db *gorm.DB, userID uint) (*models.LoyaltyAccount, error) {
	var account models.LoyaltyAccount
	if err := db.Where("user_id = ?", userID).First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			account = models.LoyaltyAccount{
				UserID:       userID,
				LoyaltyLevel: models.LoyaltyLevelBronze,
			}
			if err := db.Create(&account).Error; err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	return &account, nil
}

// GrantStamp adds one stamp to a user's account, capped at MaxStamps. The
// guarded update makes concurrent settlements safe: once the card is full,
// further increments are silently dropped until a claim resets it.
func GrantStamp(tx *gorm.DB, userID uint) error {
	if _, err := GetOrCreateLoyaltyAccount(tx, userID); err != nil {
		return err
	}
	return tx.Model(&models.LoyaltyAccount{}).
		Where("user_id = ? AND stamps < ?", userID, models.MaxStamps).
		UpdateColumn("stamps", gorm.Expr("stamps + ?", 1)).Error
}
