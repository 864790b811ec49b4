package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Return status constants
const (
	ReturnStatusNone             = ""
	ReturnStatusRequested        = "requested"
	ReturnStatusApproved         = "approved"
	ReturnStatusRejected         = "rejected"
	ReturnStatusPickupScheduled  = "pickup_scheduled"
	ReturnStatusPickedUp         = "picked_up"
	ReturnStatusRefundProcessing = "refund_processing"
	ReturnStatusRefundCompleted  = "refund_completed"
)

// Refund status constants
const (
	RefundStatusNone       = ""
	RefundStatusInitiated  = "initiated"
	RefundStatusProcessing = "processing"
	RefundStatusCompleted  = "completed"
)

// Payment method constants
const (
	PaymentMethodCOD    = "cod"
	PaymentMethodOnline = "online"
)

// orderTransitions is the single source of truth for the order lifecycle.
// Cancellation is only reachable before shipment.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// returnTransitions is forward-only except the rejection branch off requested.
var returnTransitions = map[string][]string{
	ReturnStatusRequested:        {ReturnStatusApproved, ReturnStatusRejected},
	ReturnStatusApproved:         {ReturnStatusPickupScheduled},
	ReturnStatusPickupScheduled:  {ReturnStatusPickedUp},
	ReturnStatusPickedUp:         {ReturnStatusRefundProcessing},
	ReturnStatusRefundProcessing: {ReturnStatusRefundCompleted},
	ReturnStatusRejected:         {},
	ReturnStatusRefundCompleted:  {},
}

// CanTransitionOrder reports whether an order may move from one status to another.
func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransitionReturn reports whether a return may move from one status to another.
func CanTransitionReturn(from, to string) bool {
	for _, next := range returnTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// ValidReturnStatus reports whether s is a known return status.
func ValidReturnStatus(s string) bool {
	_, ok := returnTransitions[s]
	return ok
}

// ReturnReasons is the closed list a customer may pick from when requesting a return.
var ReturnReasons = []string{
	"Defective/Damaged product",
	"Wrong item delivered",
	"Size or fit issue",
	"Quality not as expected",
	"Changed my mind",
}

// ValidReturnReason reports whether the reason is on the closed list.
func ValidReturnReason(reason string) bool {
	for _, r := range ReturnReasons {
		if r == reason {
			return true
		}
	}
	return false
}

type Order struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UserID    uint    `json:"user_id"`
	User      User    `json:"user" gorm:"foreignKey:UserID"`
	AddressID uint    `json:"address_id"`
	Address   Address `json:"address" gorm:"foreignKey:AddressID"`

	// Money fields are always recomputed server-side; client figures are advisory.
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	Tax        float64 `json:"tax"`
	Discount   float64 `json:"discount"`
	TotalPrice float64 `json:"total_price"`

	CouponID   *uint  `json:"coupon_id,omitempty"`
	CouponCode string `json:"coupon_code,omitempty"`

	PaymentMethod string     `json:"payment_method"` // cod, online
	IsPaid        bool       `json:"is_paid"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`

	// Gateway receipt. RazorpayOrderID doubles as the idempotency key for
	// online settlement; the unique index makes a duplicate verify call a
	// constraint violation instead of a second order. COD orders leave all
	// three unset.
	RazorpayOrderID   *string `gorm:"uniqueIndex" json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string  `json:"razorpay_payment_id,omitempty"`
	RazorpaySignature string  `json:"-"`

	Status      string     `json:"status"`
	IsDelivered bool       `json:"is_delivered"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CancellationDate   *time.Time `json:"cancellation_date,omitempty"`

	ReturnStatus      string     `json:"return_status,omitempty"`
	ReturnReason      string     `json:"return_reason,omitempty"`
	ReturnDetails     string     `json:"return_details,omitempty"`
	ReturnRequestedAt *time.Time `json:"return_requested_at,omitempty"`

	RefundAmount        float64    `json:"refund_amount,omitempty"`
	RefundMethod        string     `json:"refund_method,omitempty"` // wallet, original
	RefundStatus        string     `json:"refund_status,omitempty"`
	RefundTransactionID string     `json:"refund_transaction_id,omitempty"`
	RefundCompletedAt   *time.Time `json:"refund_completed_at,omitempty"`

	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	OrderItems []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem carries a point-of-sale snapshot of the variant. Name, price and
// image are copied, not joined, so later catalog edits never change an order.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `json:"order_id"`
	VariantID uint    `json:"variant_id"`
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	ImageURL  string  `json:"image_url"`
	Total     float64 `json:"total"`
}

// OrderReturnEvent is an append-only audit row written on every return
// transition: who moved the return, from where to where, and when.
type OrderReturnEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `json:"order_id"`
	Actor      string    `json:"actor"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
