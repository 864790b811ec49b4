package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon discount types
const (
	CouponTypeFlat    = "flat"
	CouponTypePercent = "percent"
)

type Coupon struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"uniqueIndex:idx_coupons_code" json:"code"`
	Description string    `json:"description"`
	Type        string    `json:"type"` // "flat" or "percent"
	Value       float64   `json:"value"`
	MaxDiscount float64   `json:"max_discount"`
	MinOrder    float64   `json:"min_order"`
	ExpiresAt   time.Time `json:"expires_at"`

	// UserID is set for claimed coupons (loyalty surprises); nil means the
	// code is open to any account until consumed.
	UserID *uint `json:"user_id,omitempty"`

	// UsedAt is written exactly once, by a conditional update at order
	// settlement. A non-nil value makes the coupon permanently spent.
	UsedAt *time.Time `json:"used_at,omitempty"`

	Active    bool           `json:"active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// SurpriseTemplate is an admin-defined reward issued as a coupon when a
// loyalty cycle is claimed.
type SurpriseTemplate struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Type         string         `json:"type"` // "flat" or "percent"
	Value        float64        `json:"value"`
	MaxDiscount  float64        `json:"max_discount"`
	MinOrder     float64        `json:"min_order"`
	ValidityDays int            `json:"validity_days"`
	Active       bool           `json:"active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// DiscountFor computes the rupee discount this coupon yields on a given
// order total. Percent coupons are capped at MaxDiscount when set.
func (cp *Coupon) DiscountFor(orderTotal float64) float64 {
	if cp.Type == CouponTypePercent {
		d := orderTotal * cp.Value / 100
		if cp.MaxDiscount > 0 && d > cp.MaxDiscount {
			d = cp.MaxDiscount
		}
		return d
	}
	return cp.Value
}
