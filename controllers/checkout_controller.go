package controllers

import (
	"fmt"
	"time"

	"github.com/Priyam-804/WearNest/config"
	"github.com/Priyam-804/WearNest/models"
	"github.com/Priyam-804/WearNest/utils"
	"github.com/gin-gonic/gin"
)

// PlaceOrderRequest is the checkout payload. Online orders are not persisted
// here; the client is pointed at the payment intent flow instead.
type PlaceOrderRequest struct {
	OrderDraft
	PaymentMethod string `json:"payment_method" binding:"required,oneof=cod online"`
}

// PlaceOrder settles a COD order immediately or hands an online order off to
// the payment flow. COD orders are created unpaid in pending status; the
// delivery agent collects and an admin marks them paid at delivery.
func PlaceOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	utils.LogInfo("PlaceOrder called: user=%d method=%s items=%d", user.ID, req.PaymentMethod, len(req.Items))

	order, coupon, err := prepareOrder(config.DB, user, req.OrderDraft, false)
	if err != nil {
		utils.LogError("Order preparation failed for user %d: %v", user.ID, err)
		utils.RespondError(c, err)
		return
	}

	if req.PaymentMethod == models.PaymentMethodOnline {
		// Nothing is written for online checkout. The client creates a
		// payment intent and the order materialises on verification.
		utils.Success(c, "Create a payment intent to complete this order", gin.H{
			"next":        "/payment/create-intent",
			"subtotal":    fmt.Sprintf("%.2f", order.Subtotal),
			"shipping":    fmt.Sprintf("%.2f", order.Shipping),
			"tax":         fmt.Sprintf("%.2f", order.Tax),
			"discount":    fmt.Sprintf("%.2f", order.Discount),
			"total_price": fmt.Sprintf("%.2f", order.TotalPrice),
		})
		return
	}

	if order.TotalPrice > utils.CODLimit {
		utils.LogInfo("COD rejected for user %d: total %.2f exceeds limit", user.ID, order.TotalPrice)
		utils.BadRequest(c, fmt.Sprintf("Cash on delivery is not available for orders above ₹%.2f", utils.CODLimit), nil)
		return
	}

	order.PaymentMethod = models.PaymentMethodCOD
	order.IsPaid = false
	order.Status = models.OrderStatusPending

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to place order", nil)
		return
	}

	if err := persistOrder(tx, order, coupon); err != nil {
		tx.Rollback()
		utils.LogError("Failed to persist COD order for user %d: %v", user.ID, err)
		utils.RespondError(c, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit COD order for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to place order", nil)
		return
	}

	utils.LogInfo("COD order %d placed for user %d, total %.2f", order.ID, user.ID, order.TotalPrice)
	utils.NotifyOrderConfirmed(user.Email, order.ID, user.ID, order.TotalPrice)
	utils.Created(c, "Order placed successfully", gin.H{"order": orderResponse(order)})
}

// GetCheckoutSummary prices a draft without placing it, so the storefront can
// show the final figures before the customer commits.
func GetCheckoutSummary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var draft OrderDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	order, _, err := prepareOrder(config.DB, user, draft, false)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, "Checkout summary", gin.H{
		"subtotal":       fmt.Sprintf("%.2f", order.Subtotal),
		"shipping":       fmt.Sprintf("%.2f", order.Shipping),
		"tax":            fmt.Sprintf("%.2f", order.Tax),
		"discount":       fmt.Sprintf("%.2f", order.Discount),
		"total_price":    fmt.Sprintf("%.2f", order.TotalPrice),
		"coupon_code":    order.CouponCode,
		"cod_available":  order.TotalPrice <= utils.CODLimit,
		"free_shipping":  order.Shipping == 0,
		"estimated_date": time.Now().Add(5 * 24 * time.Hour).Format("2006-01-02"),
	})
}
