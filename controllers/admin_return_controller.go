package controllers

import (
	"fmt"
	"time"

	"github.com/Priyam-804/WearNest/config"
	"github.com/Priyam-804/WearNest/models"
	"github.com/Priyam-804/WearNest/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpdateReturnStatusRequest moves a return through review and logistics.
type UpdateReturnStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes" binding:"max=500"`
}

// UpdateReturnStatus handles the review and pickup legs of a return:
// approved or rejected off requested, then pickup_scheduled and picked_up.
// Refund legs have their own endpoints. Every move is appended to the audit
// trail with the acting admin.
func UpdateReturnStatus(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	var req UpdateReturnStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	switch req.Status {
	case models.ReturnStatusApproved, models.ReturnStatusRejected,
		models.ReturnStatusPickupScheduled, models.ReturnStatusPickedUp:
	default:
		utils.BadRequest(c, "Status must be one of approved, rejected, pickup_scheduled, picked_up", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("User").Preload("OrderItems").
		First(&order, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	// A lost conditional write gets one transparent re-read and retry; the
	// second loss surfaces as a conflict.
	var tx *gorm.DB
	for attempt := 0; ; attempt++ {
		if order.ReturnStatus == models.ReturnStatusNone {
			utils.Conflict(c, utils.KindStateConflict, "No return is open for this order")
			return
		}
		if !models.CanTransitionReturn(order.ReturnStatus, req.Status) {
			utils.LogInfo("Admin %d attempted return %s -> %s on order %d", admin.ID, order.ReturnStatus, req.Status, order.ID)
			utils.Conflict(c, utils.KindStateConflict,
				fmt.Sprintf("Cannot move return from %s to %s", order.ReturnStatus, req.Status))
			return
		}

		tx = config.DB.Begin()
		if tx.Error != nil {
			utils.LogError("Failed to start transaction: %v", tx.Error)
			utils.InternalServerError(c, "Failed to update return", nil)
			return
		}

		result := tx.Model(&models.Order{}).
			Where("id = ? AND return_status = ?", order.ID, order.ReturnStatus).
			Update("return_status", req.Status)
		if result.Error != nil {
			tx.Rollback()
			utils.LogError("Failed to update return status for order %d: %v", order.ID, result.Error)
			utils.InternalServerError(c, "Failed to update return", nil)
			return
		}
		if result.RowsAffected > 0 {
			break
		}
		tx.Rollback()
		if attempt > 0 {
			utils.Conflict(c, utils.KindConcurrency, "Return was updated by another request, please refresh")
			return
		}
		if err := config.DB.Preload("User").Preload("OrderItems").
			First(&order, order.ID).Error; err != nil {
			utils.NotFound(c, "Order not found")
			return
		}
	}

	// Picked up goods are back in the warehouse.
	if req.Status == models.ReturnStatusPickedUp {
		for _, item := range order.OrderItems {
			if err := utils.ReleaseStock(tx, item.VariantID, item.Quantity); err != nil {
				tx.Rollback()
				utils.LogError("Failed to restock variant %d for order %d: %v", item.VariantID, order.ID, err)
				utils.InternalServerError(c, "Failed to update return", nil)
				return
			}
		}
	}

	if err := appendReturnEvent(tx, order.ID, fmt.Sprintf("admin:%d", admin.ID),
		order.ReturnStatus, req.Status, req.Notes); err != nil {
		tx.Rollback()
		utils.LogError("Failed to record return event for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update return", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit return update for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update return", nil)
		return
	}

	utils.LogInfo("Return on order %d moved %s -> %s by admin %d", order.ID, order.ReturnStatus, req.Status, admin.ID)
	if req.Status == models.ReturnStatusApproved {
		utils.NotifyReturnApproved(order.User.Email, order.ID, order.UserID)
	}

	utils.Success(c, "Return status updated", gin.H{
		"order_id": order.ID,
		"from":     order.ReturnStatus,
		"to":       req.Status,
	})
}

// ProcessRefundRequest starts a refund for a picked up return. A zero amount
// defaults to the full order total.
type ProcessRefundRequest struct {
	Amount float64 `json:"amount" binding:"min=0"`
	Notes  string  `json:"notes" binding:"max=500"`
}

// ProcessRefund moves a picked up return into refund_processing and fixes
// the refund amount. The amount can be reduced for partial refunds but never
// exceeds what the customer paid.
func ProcessRefund(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	var req ProcessRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	amount := req.Amount
	if amount == 0 {
		amount = order.TotalPrice
	}
	if amount > order.TotalPrice {
		utils.BadRequest(c, fmt.Sprintf("Refund cannot exceed the order total of ₹%.2f", order.TotalPrice), nil)
		return
	}

	// A lost conditional write gets one transparent re-read and retry; the
	// second loss surfaces as a conflict.
	var tx *gorm.DB
	for attempt := 0; ; attempt++ {
		if !models.CanTransitionReturn(order.ReturnStatus, models.ReturnStatusRefundProcessing) {
			utils.Conflict(c, utils.KindStateConflict,
				fmt.Sprintf("Cannot start a refund from return status %q", order.ReturnStatus))
			return
		}

		tx = config.DB.Begin()
		if tx.Error != nil {
			utils.LogError("Failed to start transaction: %v", tx.Error)
			utils.InternalServerError(c, "Failed to process refund", nil)
			return
		}

		result := tx.Model(&models.Order{}).
			Where("id = ? AND return_status = ?", order.ID, models.ReturnStatusPickedUp).
			Updates(map[string]interface{}{
				"return_status": models.ReturnStatusRefundProcessing,
				"refund_amount": amount,
				"refund_method": "wallet",
				"refund_status": models.RefundStatusProcessing,
			})
		if result.Error != nil {
			tx.Rollback()
			utils.LogError("Failed to start refund for order %d: %v", order.ID, result.Error)
			utils.InternalServerError(c, "Failed to process refund", nil)
			return
		}
		if result.RowsAffected > 0 {
			break
		}
		tx.Rollback()
		if attempt > 0 {
			utils.Conflict(c, utils.KindConcurrency, "Return was updated by another request, please refresh")
			return
		}
		if err := config.DB.First(&order, order.ID).Error; err != nil {
			utils.NotFound(c, "Order not found")
			return
		}
	}

	if err := appendReturnEvent(tx, order.ID, fmt.Sprintf("admin:%d", admin.ID),
		models.ReturnStatusPickedUp, models.ReturnStatusRefundProcessing,
		fmt.Sprintf("refund of ₹%.2f initiated. %s", amount, req.Notes)); err != nil {
		tx.Rollback()
		utils.LogError("Failed to record refund event for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to process refund", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit refund start for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to process refund", nil)
		return
	}

	utils.LogInfo("Refund of %.2f started for order %d by admin %d", amount, order.ID, admin.ID)
	utils.Success(c, "Refund processing started", gin.H{
		"order_id":      order.ID,
		"refund_amount": fmt.Sprintf("%.2f", amount),
		"refund_status": models.RefundStatusProcessing,
	})
}

// CompleteRefund settles a processing refund into the customer's wallet and
// closes the return. After this the refund fields never change again.
func CompleteRefund(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	var order models.Order
	if err := config.DB.Preload("User").First(&order, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	now := time.Now()
	reference := fmt.Sprintf("refund-return-%s", uuid.New().String()[:8])

	// A lost conditional write gets one transparent re-read and retry; the
	// second loss surfaces as a conflict.
	var tx *gorm.DB
	for attempt := 0; ; attempt++ {
		if !models.CanTransitionReturn(order.ReturnStatus, models.ReturnStatusRefundCompleted) {
			utils.Conflict(c, utils.KindStateConflict,
				fmt.Sprintf("Cannot complete a refund from return status %q", order.ReturnStatus))
			return
		}

		tx = config.DB.Begin()
		if tx.Error != nil {
			utils.LogError("Failed to start transaction: %v", tx.Error)
			utils.InternalServerError(c, "Failed to complete refund", nil)
			return
		}

		result := tx.Model(&models.Order{}).
			Where("id = ? AND return_status = ?", order.ID, models.ReturnStatusRefundProcessing).
			Updates(map[string]interface{}{
				"return_status":         models.ReturnStatusRefundCompleted,
				"refund_status":         models.RefundStatusCompleted,
				"refund_transaction_id": reference,
				"refund_completed_at":   now,
			})
		if result.Error != nil {
			tx.Rollback()
			utils.LogError("Failed to complete refund for order %d: %v", order.ID, result.Error)
			utils.InternalServerError(c, "Failed to complete refund", nil)
			return
		}
		if result.RowsAffected > 0 {
			break
		}
		tx.Rollback()
		if attempt > 0 {
			utils.Conflict(c, utils.KindConcurrency, "Return was updated by another request, please refresh")
			return
		}
		if err := config.DB.Preload("User").First(&order, order.ID).Error; err != nil {
			utils.NotFound(c, "Order not found")
			return
		}
	}

	if _, err := utils.CreditWallet(tx, order.UserID, order.RefundAmount,
		fmt.Sprintf("Refund for returned order #%d", order.ID), &order.ID, reference); err != nil {
		tx.Rollback()
		utils.LogError("Failed to credit wallet for order %d refund: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to complete refund", nil)
		return
	}

	if err := appendReturnEvent(tx, order.ID, fmt.Sprintf("admin:%d", admin.ID),
		models.ReturnStatusRefundProcessing, models.ReturnStatusRefundCompleted,
		fmt.Sprintf("₹%.2f credited to wallet (%s)", order.RefundAmount, reference)); err != nil {
		tx.Rollback()
		utils.LogError("Failed to record refund completion for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to complete refund", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit refund completion for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to complete refund", nil)
		return
	}

	utils.LogInfo("Refund of %.2f completed for order %d by admin %d", order.RefundAmount, order.ID, admin.ID)
	utils.NotifyRefundCompleted(order.User.Email, order.ID, order.UserID, order.RefundAmount)

	utils.Success(c, "Refund completed", gin.H{
		"order_id":              order.ID,
		"refund_amount":         fmt.Sprintf("%.2f", order.RefundAmount),
		"refund_method":         "wallet",
		"refund_status":         models.RefundStatusCompleted,
		"refund_transaction_id": reference,
	})
}
