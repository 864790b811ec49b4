package controllers

import (
	"fmt"
	"time"

	"github.com/Priyam-804/WearNest/models"
	"github.com/Priyam-804/WearNest/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DraftItem references a variant and quantity from the cart snapshot.
type DraftItem struct {
	VariantID uint `json:"variant_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// OrderDraft is the client-supplied order payload. Any money figures the
// client attaches elsewhere are ignored; pricing is recomputed from the
// variants' server-side prices.
type OrderDraft struct {
	Items      []DraftItem `json:"items" binding:"required"`
	AddressID  uint        `json:"address_id" binding:"required"`
	CouponCode string      `json:"coupon_code"`
}

// validateCoupon runs the eligibility checks in order and returns the coupon
// and its discount against the server-recomputed total. Read-only: nothing is
// marked used here, so a user can validate repeatedly before committing.
// allowExpired waives the expiry check for captured payments: the coupon was
// valid when the intent was priced and the customer has already paid the
// discounted amount, so a lapse during the gateway hop must not strand the
// money. The used_at write still keeps it single use.
func validateCoupon(db *gorm.DB, code string, userID uint, orderTotal float64, allowExpired bool) (*models.Coupon, float64, error) {
	var coupon models.Coupon
	if err := db.Where("code = ? AND active = ?", code, true).First(&coupon).Error; err != nil {
		return nil, 0, utils.CouponErr(utils.KindCouponNotFound, "Invalid or inactive coupon")
	}
	if coupon.UserID != nil && *coupon.UserID != userID {
		return nil, 0, utils.CouponErr(utils.KindCouponNotFound, "Invalid or inactive coupon")
	}
	if !allowExpired && time.Now().After(coupon.ExpiresAt) {
		return nil, 0, utils.CouponErr(utils.KindCouponExpired, "Coupon has expired")
	}
	if coupon.UsedAt != nil {
		return nil, 0, utils.CouponErr(utils.KindCouponAlreadyUsed, "Coupon has already been used")
	}
	if orderTotal < coupon.MinOrder {
		return nil, 0, utils.CouponErr(utils.KindMinOrderNotMet,
			fmt.Sprintf("Order total must be at least ₹%.2f to use this coupon", coupon.MinOrder))
	}
	return &coupon, coupon.DiscountFor(orderTotal), nil
}

// consumeCoupon marks a coupon used exactly once. The conditional write is
// the guard against double-spending from a retried settlement or a second
// tab: whichever request loses the race gets zero rows and fails.
func consumeCoupon(tx *gorm.DB, couponID uint) error {
	result := tx.Model(&models.Coupon{}).
		Where("id = ? AND used_at IS NULL", couponID).
		UpdateColumn("used_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.CouponErr(utils.KindCouponAlreadyUsed, "Coupon has already been used")
	}
	return nil
}

// prepareOrder turns a draft into an unpersisted Order: loads the address and
// variants, snapshots name/size/colour/price/image onto the items, recomputes
// all money fields and validates the coupon. The caller decides payment
// method, status and when to persist. captured marks drafts whose payment the
// gateway has already taken; those tolerate a coupon that expired after the
// intent was priced.
func prepareOrder(db *gorm.DB, user models.User, draft OrderDraft, captured bool) (*models.Order, *models.Coupon, error) {
	if len(draft.Items) == 0 {
		return nil, nil, utils.ValidationErr("Cannot place an order with no items", nil)
	}

	var address models.Address
	if err := db.Where("id = ? AND user_id = ?", draft.AddressID, user.ID).First(&address).Error; err != nil {
		return nil, nil, utils.NotFoundErr("Address not found")
	}
	if !utils.ValidPincode(address.PostalCode) {
		return nil, nil, utils.ValidationErr("Shipping address has an invalid postal code", nil)
	}
	if address.Phone != "" && !utils.ValidPhone(address.Phone) {
		return nil, nil, utils.ValidationErr("Shipping address has an invalid phone number", nil)
	}

	var orderItems []models.OrderItem
	var pricedItems []utils.PricedItem
	for _, item := range draft.Items {
		var variant models.ProductVariant
		if err := db.Where("id = ? AND active = ?", item.VariantID, true).First(&variant).Error; err != nil {
			return nil, nil, utils.NotFoundErr(fmt.Sprintf("Variant %d not found", item.VariantID))
		}
		orderItems = append(orderItems, models.OrderItem{
			VariantID: variant.ID,
			Name:      variant.Name,
			Size:      variant.Size,
			Color:     variant.Color,
			Quantity:  item.Quantity,
			UnitPrice: variant.Price,
			ImageURL:  variant.ImageURL,
			Total:     utils.Round2(variant.Price * float64(item.Quantity)),
		})
		pricedItems = append(pricedItems, utils.PricedItem{UnitPrice: variant.Price, Quantity: item.Quantity})
	}

	var subtotal float64
	for _, pi := range pricedItems {
		subtotal += pi.UnitPrice * float64(pi.Quantity)
	}

	var coupon *models.Coupon
	var discount float64
	if draft.CouponCode != "" {
		var err error
		coupon, discount, err = validateCoupon(db, draft.CouponCode, user.ID, subtotal, captured)
		if err != nil {
			return nil, nil, err
		}
	}

	totals := utils.ComputeTotals(pricedItems,
		utils.FreeShippingThreshold, utils.FlatShippingCost, utils.TaxRate, discount)

	order := &models.Order{
		UserID:     user.ID,
		AddressID:  address.ID,
		Address:    address,
		Subtotal:   totals.Subtotal,
		Shipping:   totals.Shipping,
		Tax:        totals.Tax,
		Discount:   totals.Discount,
		TotalPrice: totals.Total,
		OrderItems: orderItems,
	}
	if coupon != nil {
		order.CouponID = &coupon.ID
		order.CouponCode = coupon.Code
	}
	return order, coupon, nil
}

// persistOrder writes the order inside the caller's transaction: reserves
// stock for every item, creates the row, spends the coupon and grants the
// loyalty stamp. Stamps accrue at settlement, never at delivery, and are not
// revoked on cancellation.
func persistOrder(tx *gorm.DB, order *models.Order, coupon *models.Coupon) error {
	for _, item := range order.OrderItems {
		if err := utils.ReserveStock(tx, item.VariantID, item.Quantity); err != nil {
			return err
		}
	}
	if err := tx.Create(order).Error; err != nil {
		return err
	}
	if coupon != nil {
		if err := consumeCoupon(tx, coupon.ID); err != nil {
			return err
		}
	}
	return utils.GrantStamp(tx, order.UserID)
}

// orderResponse shapes an order for the API the way the storefront expects.
func orderResponse(order *models.Order) gin.H {
	items := make([]gin.H, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, gin.H{
			"variant_id": item.VariantID,
			"name":       item.Name,
			"size":       item.Size,
			"color":      item.Color,
			"quantity":   item.Quantity,
			"unit_price": fmt.Sprintf("%.2f", item.UnitPrice),
			"image_url":  item.ImageURL,
			"total":      fmt.Sprintf("%.2f", item.Total),
		})
	}

	resp := gin.H{
		"id":             order.ID,
		"status":         order.Status,
		"payment_method": order.PaymentMethod,
		"is_paid":        order.IsPaid,
		"is_delivered":   order.IsDelivered,
		"subtotal":       fmt.Sprintf("%.2f", order.Subtotal),
		"shipping":       fmt.Sprintf("%.2f", order.Shipping),
		"tax":            fmt.Sprintf("%.2f", order.Tax),
		"discount":       fmt.Sprintf("%.2f", order.Discount),
		"total_price":    fmt.Sprintf("%.2f", order.TotalPrice),
		"coupon_code":    order.CouponCode,
		"created_at":     order.CreatedAt.Format("2006-01-02 15:04:05"),
		"items":          items,
	}
	if order.PaidAt != nil {
		resp["paid_at"] = order.PaidAt.Format("2006-01-02 15:04:05")
	}
	if order.DeliveredAt != nil {
		resp["delivered_at"] = order.DeliveredAt.Format("2006-01-02 15:04:05")
	}
	if order.Status == models.OrderStatusCancelled {
		resp["cancellation_reason"] = order.CancellationReason
	}
	if order.ReturnStatus != models.ReturnStatusNone {
		resp["return_status"] = order.ReturnStatus
		resp["return_reason"] = order.ReturnReason
	}
	if order.RefundStatus != models.RefundStatusNone {
		resp["refund_status"] = order.RefundStatus
		resp["refund_amount"] = fmt.Sprintf("%.2f", order.RefundAmount)
		resp["refund_method"] = order.RefundMethod
	}
	return resp
}

// currentUser pulls the authenticated user out of the gin context.
func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	if !ok {
		utils.LogError("Invalid user type in context")
		utils.Unauthorized(c, "User not found")
		return models.User{}, false
	}
	return user, true
}

// currentAdmin pulls the authenticated admin out of the gin context.
func currentAdmin(c *gin.Context) (models.Admin, bool) {
	adminVal, exists := c.Get("admin")
	if !exists {
		utils.LogError("Admin not found in context")
		utils.Unauthorized(c, "Admin not found in context")
		return models.Admin{}, false
	}
	admin, ok := adminVal.(models.Admin)
	if !ok {
		utils.LogError("Invalid admin type in context")
		utils.InternalServerError(c, "Invalid admin type", nil)
		return models.Admin{}, false
	}
	return admin, true
}
