package controllers

import (
	"fmt"
	"time"

	"github.com/Priyam-804/WearNest/config"
	"github.com/Priyam-804/WearNest/models"
	"github.com/Priyam-804/WearNest/utils"
	"github.com/gin-gonic/gin"
)

// ListAllOrders gives admins a paginated view across users, optionally
// filtered by status.
func ListAllOrders(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	query := config.DB.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		if !models.ValidOrderStatus(status) {
			utils.BadRequest(c, "Unknown order status", nil)
			return
		}
		query = query.Where("status = ?", status)
	}

	pagination := utils.NewPagination(c)
	var total int64
	query.Count(&total)
	pagination.SetTotal(total)

	var orders []models.Order
	if err := query.Preload("OrderItems").Preload("User").
		Order("created_at desc").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to list orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	list := make([]gin.H, 0, len(orders))
	for i := range orders {
		entry := orderResponse(&orders[i])
		entry["user"] = gin.H{"id": orders[i].UserID, "email": orders[i].User.Email}
		list = append(list, entry)
	}
	utils.SendPaginatedResponse(c, gin.H{"orders": list}, pagination)
}

// UpdateOrderStatusRequest moves an order along its lifecycle.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus advances an order. Delivery stamps the delivery time and,
// for COD, marks the order paid since the agent collected at the door. The
// write is conditional on the status the admin saw, so concurrent updates
// surface as a conflict instead of silently clobbering each other.
func UpdateOrderStatus(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		utils.BadRequest(c, "Unknown order status", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("User").First(&order, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	// A lost conditional write gets one transparent re-read and retry; the
	// second loss or a now-invalid transition surfaces to the caller.
	for attempt := 0; ; attempt++ {
		if !models.CanTransitionOrder(order.Status, req.Status) {
			utils.LogInfo("Admin %d attempted %s -> %s on order %d", admin.ID, order.Status, req.Status, order.ID)
			utils.Conflict(c, utils.KindStateConflict,
				fmt.Sprintf("Cannot move order from %s to %s", order.Status, req.Status))
			return
		}

		now := time.Now()
		updates := map[string]interface{}{"status": req.Status}
		if req.Status == models.OrderStatusDelivered {
			updates["is_delivered"] = true
			updates["delivered_at"] = now
			if order.PaymentMethod == models.PaymentMethodCOD && !order.IsPaid {
				updates["is_paid"] = true
				updates["paid_at"] = now
			}
		}

		result := config.DB.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Updates(updates)
		if result.Error != nil {
			utils.LogError("Failed to update order %d status: %v", order.ID, result.Error)
			utils.InternalServerError(c, "Failed to update order status", nil)
			return
		}
		if result.RowsAffected > 0 {
			break
		}
		if attempt > 0 {
			utils.Conflict(c, utils.KindConcurrency, "Order was updated by another request, please refresh")
			return
		}
		if err := config.DB.Preload("User").First(&order, order.ID).Error; err != nil {
			utils.NotFound(c, "Order not found")
			return
		}
	}

	utils.LogInfo("Order %d moved %s -> %s by admin %d", order.ID, order.Status, req.Status, admin.ID)
	if req.Status == models.OrderStatusDelivered {
		utils.PublishOrderEvent(utils.EventOrderDelivered, order.ID, order.UserID, order.TotalPrice)
		utils.SendOrderEmail(order.User.Email,
			fmt.Sprintf("Your %s order #%d has been delivered", utils.AppName, order.ID),
			fmt.Sprintf("<p>Your order #%d was delivered today. You have 7 days to request a return.</p>", order.ID))
	}

	utils.Success(c, "Order status updated", gin.H{
		"order_id": order.ID,
		"from":     order.Status,
		"to":       req.Status,
	})
}
