package utils

import (
	"fmt"

	"github.com/Priyam-804/WearNest/models"
	"gorm.io/gorm"
)

// ReserveStock atomically decrements a variant's stock. The guarded update
// (stock >= qty) is the only thing standing between two racing checkouts and
// a negative stock count, so callers must check the returned error and roll
// back their transaction on failure.
func ReserveStock(tx *gorm.DB, variantID uint, qty int) error {
	result := tx.Model(&models.ProductVariant{}).
		Where("id = ? AND active = ? AND stock >= ?", variantID, true, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return StateConflictErr(fmt.Sprintf("Insufficient stock for variant %d", variantID))
	}
	return nil
}

// ReleaseStock returns reserved stock to a variant after a cancellation.
func ReleaseStock(tx *gorm.DB, variantID uint, qty int) error {
	return tx.Model(&models.ProductVariant{}).
		Where("id = ?", variantID).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty)).Error
}
