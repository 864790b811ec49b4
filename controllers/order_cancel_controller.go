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

// CancelOrderRequest carries the customer's stated reason.
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=255"`
}

// cancelWindowFor returns how long after placement this order may be
// cancelled. Paid orders get a tighter window because fulfilment starts
// immediately after settlement.
func cancelWindowFor(order *models.Order) time.Duration {
	if order.IsPaid {
		return utils.CancelWindowPaid
	}
	return utils.CancelWindowUnpaid
}

// CancelOrder cancels an order inside its cancellation window, restocks the
// items and refunds a paid total to the wallet. The status write is
// conditional so two racing cancels (or a cancel racing a shipment) resolve
// to exactly one winner.
func CancelOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems").
		Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	// A lost conditional write gets one transparent re-read and retry; after
	// the re-read a cancel racing a shipment reports the real order state
	// instead of a vague conflict.
	now := time.Now()
	var tx *gorm.DB
	for attempt := 0; ; attempt++ {
		if !models.CanTransitionOrder(order.Status, models.OrderStatusCancelled) {
			utils.LogInfo("Cancel rejected for order %d in status %s", order.ID, order.Status)
			utils.Conflict(c, utils.KindStateConflict,
				fmt.Sprintf("Order cannot be cancelled in %s status", order.Status))
			return
		}

		window := cancelWindowFor(&order)
		if time.Since(order.CreatedAt) > window {
			utils.LogInfo("Cancel window closed for order %d (window %s)", order.ID, window)
			utils.Conflict(c, utils.KindCancelWindowClosed,
				fmt.Sprintf("The cancellation window of %s has closed for this order", window))
			return
		}

		tx = config.DB.Begin()
		if tx.Error != nil {
			utils.LogError("Failed to start transaction: %v", tx.Error)
			utils.InternalServerError(c, "Failed to cancel order", nil)
			return
		}

		result := tx.Model(&models.Order{}).
			Where("id = ? AND status IN ?", order.ID,
				[]string{models.OrderStatusPending, models.OrderStatusProcessing}).
			Updates(map[string]interface{}{
				"status":              models.OrderStatusCancelled,
				"cancellation_reason": req.Reason,
				"cancellation_date":   now,
			})
		if result.Error != nil {
			tx.Rollback()
			utils.LogError("Failed to cancel order %d: %v", order.ID, result.Error)
			utils.InternalServerError(c, "Failed to cancel order", nil)
			return
		}
		if result.RowsAffected > 0 {
			break
		}
		tx.Rollback()
		if attempt > 0 {
			utils.Conflict(c, utils.KindConcurrency, "Order was updated by another request, please refresh")
			return
		}
		if err := config.DB.Preload("OrderItems").
			Where("id = ? AND user_id = ?", order.ID, user.ID).
			First(&order).Error; err != nil {
			utils.NotFound(c, "Order not found")
			return
		}
	}

	for _, item := range order.OrderItems {
		if err := utils.ReleaseStock(tx, item.VariantID, item.Quantity); err != nil {
			tx.Rollback()
			utils.LogError("Failed to restock variant %d for order %d: %v", item.VariantID, order.ID, err)
			utils.InternalServerError(c, "Failed to cancel order", nil)
			return
		}
	}

	refunded := false
	if order.IsPaid {
		reference := fmt.Sprintf("refund-cancel-%s", uuid.New().String()[:8])
		if _, err := utils.CreditWallet(tx, user.ID, order.TotalPrice,
			fmt.Sprintf("Refund for cancelled order #%d", order.ID), &order.ID, reference); err != nil {
			tx.Rollback()
			utils.LogError("Failed to credit wallet for order %d: %v", order.ID, err)
			utils.InternalServerError(c, "Failed to cancel order", nil)
			return
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"refund_amount":         order.TotalPrice,
			"refund_method":         "wallet",
			"refund_status":         models.RefundStatusCompleted,
			"refund_transaction_id": reference,
			"refund_completed_at":   now,
		}).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to record refund for order %d: %v", order.ID, err)
			utils.InternalServerError(c, "Failed to cancel order", nil)
			return
		}
		refunded = true
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit cancellation of order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to cancel order", nil)
		return
	}

	utils.LogInfo("Order %d cancelled by user %d (refunded=%v)", order.ID, user.ID, refunded)
	utils.PublishOrderEvent(utils.EventOrderCancelled, order.ID, user.ID, order.TotalPrice)

	data := gin.H{"order_id": order.ID, "status": models.OrderStatusCancelled}
	if refunded {
		data["refund"] = gin.H{
			"amount": fmt.Sprintf("%.2f", order.TotalPrice),
			"method": "wallet",
			"status": models.RefundStatusCompleted,
		}
	}
	utils.Success(c, "Order cancelled successfully", data)
}
