package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/Priyam-804/WearNest/config"
	"github.com/Priyam-804/WearNest/models"
	"github.com/Priyam-804/WearNest/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
)

// CreateIntentRequest reuses the order draft; pricing is recomputed before
// the gateway order is created so the charged amount can never be client-set.
type CreateIntentRequest struct {
	OrderDraft
}

// VerifyPaymentRequest carries the gateway receipt handed back to the client
// after a successful capture, together with the draft it pays for. The server
// holds no state between intent and verify, so an abandoned checkout leaves
// nothing behind.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string     `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string     `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string     `json:"razorpay_signature" binding:"required"`
	OrderDraft        OrderDraft `json:"order_draft" binding:"required"`
}

// verifyRazorpaySignature checks the gateway HMAC over "order_id|payment_id"
// using a constant time comparison.
func verifyRazorpaySignature(orderID, paymentID, signature string) bool {
	secret := os.Getenv("RAZORPAY_SECRET")
	if secret == "" {
		utils.LogError("RAZORPAY_SECRET not configured")
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// CreatePaymentIntent prices the draft and creates a gateway order for the
// exact amount. Nothing is persisted; the client brings the draft back to
// the verify endpoint after the capture.
func CreatePaymentIntent(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	order, _, err := prepareOrder(config.DB, user, req.OrderDraft, false)
	if err != nil {
		utils.LogError("Intent preparation failed for user %d: %v", user.ID, err)
		utils.RespondError(c, err)
		return
	}

	amountPaise := int(math.Round(order.TotalPrice * 100))
	client := razorpay.NewClient(os.Getenv("RAZORPAY_KEY"), os.Getenv("RAZORPAY_SECRET"))
	gatewayOrder, err := client.Order.Create(map[string]interface{}{
		"amount":   amountPaise,
		"currency": utils.Currency,
		"receipt":  fmt.Sprintf("rcpt_%s", uuid.New().String()[:18]),
	}, nil)
	if err != nil {
		utils.LogError("Failed to create gateway order for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create payment intent", nil)
		return
	}

	gatewayOrderID, ok := gatewayOrder["id"].(string)
	if !ok || gatewayOrderID == "" {
		utils.LogError("Gateway order response missing id for user %d", user.ID)
		utils.InternalServerError(c, "Failed to create payment intent", nil)
		return
	}

	utils.LogInfo("Payment intent %s created for user %d, amount %.2f", gatewayOrderID, user.ID, order.TotalPrice)
	utils.Success(c, "Payment intent created", gin.H{
		"razorpay_order_id": gatewayOrderID,
		"amount":            amountPaise,
		"currency":          utils.Currency,
		"key_id":            os.Getenv("RAZORPAY_KEY"),
		"total_price":       fmt.Sprintf("%.2f", order.TotalPrice),
	})
}

// VerifyPayment settles an online order from the draft in the request. The
// signature is checked before any write; a bad receipt leaves the database
// untouched. Pricing is recomputed server side, so the draft cannot smuggle
// in client-set money figures. A repeated verify for the same gateway order
// returns the existing order instead of a duplicate.
func VerifyPayment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if !verifyRazorpaySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		utils.LogError("Signature verification failed for gateway order %s, user %d", req.RazorpayOrderID, user.ID)
		utils.Conflict(c, utils.KindPaymentVerification, "Payment verification failed")
		return
	}

	// Idempotency: a retried callback finds the settled order and stops.
	var existing models.Order
	if err := config.DB.Preload("OrderItems").
		Where("razorpay_order_id = ?", req.RazorpayOrderID).
		First(&existing).Error; err == nil {
		utils.LogInfo("Duplicate verify for gateway order %s, returning order %d", req.RazorpayOrderID, existing.ID)
		utils.Success(c, "Payment already verified", gin.H{"order": orderResponse(&existing)})
		return
	}

	order, coupon, err := prepareOrder(config.DB, user, req.OrderDraft, true)
	if err != nil {
		utils.LogError("Settlement preparation failed for gateway order %s: %v", req.RazorpayOrderID, err)
		utils.RespondError(c, err)
		return
	}

	now := time.Now()
	order.PaymentMethod = models.PaymentMethodOnline
	order.IsPaid = true
	order.PaidAt = &now
	order.Status = models.OrderStatusProcessing
	order.RazorpayOrderID = &req.RazorpayOrderID
	order.RazorpayPaymentID = req.RazorpayPaymentID
	order.RazorpaySignature = req.RazorpaySignature

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to verify payment", nil)
		return
	}

	if err := persistOrder(tx, order, coupon); err != nil {
		tx.Rollback()
		// A concurrent verify may have won the unique index on the gateway
		// order id; surface that as the idempotent success it is.
		var settled models.Order
		if lookupErr := config.DB.Preload("OrderItems").
			Where("razorpay_order_id = ?", req.RazorpayOrderID).
			First(&settled).Error; lookupErr == nil {
			utils.Success(c, "Payment already verified", gin.H{"order": orderResponse(&settled)})
			return
		}
		utils.LogError("Failed to persist settled order for gateway order %s: %v", req.RazorpayOrderID, err)
		utils.RespondError(c, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit settled order for gateway order %s: %v", req.RazorpayOrderID, err)
		utils.InternalServerError(c, "Failed to verify payment", nil)
		return
	}

	utils.LogInfo("Order %d settled from gateway order %s for user %d", order.ID, req.RazorpayOrderID, user.ID)
	utils.NotifyOrderConfirmed(user.Email, order.ID, user.ID, order.TotalPrice)
	utils.Created(c, "Payment verified and order placed", gin.H{"order": orderResponse(order)})
}
