package controllers

import (
	"fmt"
	"time"

	"github.com/Priyam-804/WearNest/config"
	"github.com/Priyam-804/WearNest/models"
	"github.com/Priyam-804/WearNest/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReturnOrderRequest opens a return. The reason must come from the closed
// list; details are free text for the reviewer.
type ReturnOrderRequest struct {
	Reason  string `json:"reason" binding:"required"`
	Details string `json:"details" binding:"max=500"`
}

// appendReturnEvent writes the audit row for a return transition.
func appendReturnEvent(tx *gorm.DB, orderID uint, actor, from, to, notes string) error {
	return tx.Create(&models.OrderReturnEvent{
		OrderID:    orderID,
		Actor:      actor,
		FromStatus: from,
		ToStatus:   to,
		Notes:      notes,
	}).Error
}

// ReturnOrder opens a return request on a delivered order within the return
// window. One active return per order: a second request while one is open, or
// after one completed, is rejected.
func ReturnOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req ReturnOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if !models.ValidReturnReason(req.Reason) {
		utils.BadRequest(c, "Please select a valid return reason", gin.H{"reasons": models.ReturnReasons})
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	// A lost conditional write gets one transparent re-read and retry; the
	// second loss surfaces as a conflict.
	now := time.Now()
	var tx *gorm.DB
	for attempt := 0; ; attempt++ {
		if order.Status != models.OrderStatusDelivered || order.DeliveredAt == nil {
			utils.Conflict(c, utils.KindStateConflict, "Only delivered orders can be returned")
			return
		}

		if time.Since(*order.DeliveredAt) > utils.ReturnWindow {
			utils.LogInfo("Return window closed for order %d", order.ID)
			utils.Conflict(c, utils.KindReturnWindowClosed,
				"The return window of 7 days after delivery has closed for this order")
			return
		}

		// Rejected returns may be re-requested; anything else means a return
		// is already in flight or done.
		if order.ReturnStatus != models.ReturnStatusNone && order.ReturnStatus != models.ReturnStatusRejected {
			utils.Conflict(c, utils.KindStateConflict, "A return is already open for this order")
			return
		}

		tx = config.DB.Begin()
		if tx.Error != nil {
			utils.LogError("Failed to start transaction: %v", tx.Error)
			utils.InternalServerError(c, "Failed to request return", nil)
			return
		}

		result := tx.Model(&models.Order{}).
			Where("id = ? AND (return_status = ? OR return_status = ?)",
				order.ID, models.ReturnStatusNone, models.ReturnStatusRejected).
			Updates(map[string]interface{}{
				"return_status":       models.ReturnStatusRequested,
				"return_reason":       req.Reason,
				"return_details":      req.Details,
				"return_requested_at": now,
			})
		if result.Error != nil {
			tx.Rollback()
			utils.LogError("Failed to open return for order %d: %v", order.ID, result.Error)
			utils.InternalServerError(c, "Failed to request return", nil)
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
		if err := config.DB.Where("id = ? AND user_id = ?", order.ID, user.ID).
			First(&order).Error; err != nil {
			utils.NotFound(c, "Order not found")
			return
		}
	}

	if err := appendReturnEvent(tx, order.ID, fmt.Sprintf("user:%d", user.ID),
		order.ReturnStatus, models.ReturnStatusRequested, req.Reason); err != nil {
		tx.Rollback()
		utils.LogError("Failed to record return event for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to request return", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit return request for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to request return", nil)
		return
	}

	utils.LogInfo("Return requested for order %d by user %d: %s", order.ID, user.ID, req.Reason)
	utils.PublishOrderEvent(utils.EventReturnRequested, order.ID, user.ID, order.TotalPrice)

	utils.Success(c, "Return requested successfully", gin.H{
		"order_id":      order.ID,
		"return_status": models.ReturnStatusRequested,
		"reason":        req.Reason,
	})
}
