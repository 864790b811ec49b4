package utils

import (
	"github.com/Priyam-804/WearNest/models"
	"gorm.io/gorm"
)

// GetOrCreateWallet retrieves or creates a wallet for a user
func GetOrCreateWallet(db *gorm.DB, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			wallet = models.Wallet{UserID: userID, Balance: 0}
			if err := db.Create(&wallet).Error; err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	return &wallet, nil
}

// CreditWallet credits an amount to a user's wallet and records the
// transaction. Runs inside the caller's transaction so a failed order update
// never leaves a dangling credit.
func CreditWallet(tx *gorm.DB, userID uint, amount float64, description string, orderID *uint, reference string) (*models.WalletTransaction, error) {
	wallet, err := GetOrCreateWallet(tx, userID)
	if err != nil {
		return nil, err
	}

	transaction := models.WalletTransaction{
		WalletID:    wallet.ID,
		Amount:      amount,
		Type:        models.TransactionTypeCredit,
		Description: description,
		OrderID:     orderID,
		Reference:   reference,
		Status:      models.TransactionStatusCompleted,
	}
	if err := tx.Create(&transaction).Error; err != nil {
		return nil, err
	}

	if err := tx.Model(&models.Wallet{}).Where("id = ?", wallet.ID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount)).Error; err != nil {
		return nil, err
	}

	return &transaction, nil
}
