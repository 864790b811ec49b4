package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/Priyam-804/WearNest/config"
	"github.com/Priyam-804/WearNest/models"
	"github.com/Priyam-804/WearNest/utils"
	"github.com/gin-gonic/gin"
)

// ApplyCouponRequest validates a coupon against a prospective order total.
type ApplyCouponRequest struct {
	Code       string  `json:"code" binding:"required"`
	OrderTotal float64 `json:"order_total" binding:"required,gt=0"`
}

// ApplyCoupon is the read-only preview: it reports the discount a coupon
// would give without spending it. Consumption happens at settlement.
func ApplyCoupon(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	coupon, discount, err := validateCoupon(config.DB, code, user.ID, req.OrderTotal, false)
	if err != nil {
		utils.LogInfo("Coupon %s rejected for user %d: %v", code, user.ID, err)
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, "Coupon is valid", gin.H{
		"code":       coupon.Code,
		"type":       coupon.Type,
		"discount":   fmt.Sprintf("%.2f", discount),
		"min_order":  fmt.Sprintf("%.2f", coupon.MinOrder),
		"expires_at": coupon.ExpiresAt.Format("2006-01-02 15:04:05"),
	})
}

// GetUserCoupons lists the coupons visible to the user: unexpired public ones
// plus their own bound coupons, used or not.
func GetUserCoupons(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var coupons []models.Coupon
	if err := config.DB.
		Where("active = ? AND (user_id IS NULL OR user_id = ?)", true, user.ID).
		Order("expires_at asc").
		Find(&coupons).Error; err != nil {
		utils.LogError("Failed to fetch coupons for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch coupons", nil)
		return
	}

	list := make([]gin.H, 0, len(coupons))
	for _, cp := range coupons {
		list = append(list, gin.H{
			"code":       cp.Code,
			"type":       cp.Type,
			"value":      cp.Value,
			"min_order":  fmt.Sprintf("%.2f", cp.MinOrder),
			"expires_at": cp.ExpiresAt.Format("2006-01-02 15:04:05"),
			"used":       cp.UsedAt != nil,
			"expired":    time.Now().After(cp.ExpiresAt),
			"personal":   cp.UserID != nil,
		})
	}
	utils.Success(c, "Coupons fetched successfully", gin.H{"coupons": list})
}

// CreateCouponRequest is the admin payload for a new coupon.
type CreateCouponRequest struct {
	Code        string  `json:"code" binding:"required,min=3,max=20"`
	Type        string  `json:"type" binding:"required,oneof=flat percent"`
	Value       float64 `json:"value" binding:"required,gt=0"`
	MaxDiscount float64 `json:"max_discount"`
	MinOrder    float64 `json:"min_order"`
	ExpiresAt   string  `json:"expires_at" binding:"required"`
	UserID      *uint   `json:"user_id"`
}

// CreateCoupon lets an admin mint a coupon, optionally bound to one user.
func CreateCoupon(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if req.Type == models.CouponTypePercent && req.Value > 100 {
		utils.BadRequest(c, "Percent coupons cannot exceed 100", nil)
		return
	}

	expiresAt, err := time.Parse("2006-01-02", req.ExpiresAt)
	if err != nil {
		utils.BadRequest(c, "expires_at must be in YYYY-MM-DD format", nil)
		return
	}
	if expiresAt.Before(time.Now()) {
		utils.BadRequest(c, "Expiry date must be in the future", nil)
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	var count int64
	config.DB.Model(&models.Coupon{}).Where("code = ?", code).Count(&count)
	if count > 0 {
		utils.Conflict(c, utils.KindStateConflict, "Coupon code already exists")
		return
	}

	coupon := models.Coupon{
		Code:        code,
		Type:        req.Type,
		Value:       req.Value,
		MaxDiscount: req.MaxDiscount,
		MinOrder:    req.MinOrder,
		ExpiresAt:   expiresAt.Add(24*time.Hour - time.Second),
		UserID:      req.UserID,
		Active:      true,
	}
	if err := config.DB.Create(&coupon).Error; err != nil {
		utils.LogError("Failed to create coupon %s: %v", code, err)
		utils.InternalServerError(c, "Failed to create coupon", nil)
		return
	}

	utils.LogInfo("Coupon %s created", code)
	utils.Created(c, "Coupon created successfully", gin.H{"coupon": coupon})
}

// DeactivateCoupon turns a coupon off without deleting its history.
func DeactivateCoupon(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	var coupon models.Coupon
	if err := config.DB.First(&coupon, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Coupon not found")
		return
	}

	if err := config.DB.Model(&coupon).Update("active", false).Error; err != nil {
		utils.LogError("Failed to deactivate coupon %d: %v", coupon.ID, err)
		utils.InternalServerError(c, "Failed to deactivate coupon", nil)
		return
	}
	utils.Success(c, "Coupon deactivated", gin.H{"code": coupon.Code})
}

// ListCoupons gives the admin a paginated view of every coupon.
func ListCoupons(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	pagination := utils.NewPagination(c)
	var total int64
	config.DB.Model(&models.Coupon{}).Count(&total)
	pagination.SetTotal(total)

	var coupons []models.Coupon
	if err := config.DB.Order("created_at desc").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&coupons).Error; err != nil {
		utils.LogError("Failed to list coupons: %v", err)
		utils.InternalServerError(c, "Failed to fetch coupons", nil)
		return
	}

	utils.SendPaginatedResponse(c, gin.H{"coupons": coupons}, pagination)
}
