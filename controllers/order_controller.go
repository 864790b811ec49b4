package controllers

import (
	"github.com/Priyam-804/WearNest/config"
	"github.com/Priyam-804/WearNest/models"
	"github.com/Priyam-804/WearNest/utils"
	"github.com/gin-gonic/gin"
)

// GetOrders lists the authenticated user's orders, newest first.
func GetOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)
	var total int64
	config.DB.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&total)
	pagination.SetTotal(total)

	var orders []models.Order
	if err := config.DB.Preload("OrderItems").
		Where("user_id = ?", user.ID).
		Order("created_at desc").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	list := make([]gin.H, 0, len(orders))
	for i := range orders {
		list = append(list, orderResponse(&orders[i]))
	}
	utils.SendPaginatedResponse(c, gin.H{"orders": list}, pagination)
}

// GetOrderDetails returns one of the user's orders with its return history.
func GetOrderDetails(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems").Preload("Address").
		Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	var events []models.OrderReturnEvent
	config.DB.Where("order_id = ?", order.ID).Order("created_at asc").Find(&events)

	resp := orderResponse(&order)
	if len(events) > 0 {
		history := make([]gin.H, 0, len(events))
		for _, ev := range events {
			history = append(history, gin.H{
				"actor":       ev.Actor,
				"from_status": ev.FromStatus,
				"to_status":   ev.ToStatus,
				"notes":       ev.Notes,
				"created_at":  ev.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		resp["return_history"] = history
	}
	utils.Success(c, "Order details fetched successfully", gin.H{"order": resp})
}

// GetReturnReasons exposes the closed reason list the storefront renders.
func GetReturnReasons(c *gin.Context) {
	utils.Success(c, "Return reasons", gin.H{"reasons": models.ReturnReasons})
}
