package utils

import "time"

// Application constants
const (
	// Application name
	AppName = "WearNest"

	// API version
	APIVersion = "v1"

	// Default port
	DefaultPort = "8080"

	// Currency used across the storefront
	Currency = "INR"
)

// Pricing constants. The storefront charges a flat shipping fee below the
// free-shipping threshold and a single flat tax rate on the discounted base.
const (
	// FreeShippingThreshold is the subtotal at which shipping becomes free
	FreeShippingThreshold = 599.0

	// FlatShippingCost below the threshold
	FlatShippingCost = 49.0

	// TaxRate applied to subtotal + shipping - discount
	TaxRate = 0.05

	// CODLimit is the maximum order total eligible for cash on delivery
	CODLimit = 1000.0
)

// Lifecycle windows. All are evaluated against server-held timestamps at
// request time; there is no background expiry job.
const (
	// CancelWindowPaid is the cancellation window for paid orders
	CancelWindowPaid = 1 * time.Hour

	// CancelWindowUnpaid is the cancellation window for unpaid orders
	CancelWindowUnpaid = 24 * time.Hour

	// ReturnWindow is the period after delivery in which a return may be requested
	ReturnWindow = 7 * 24 * time.Hour
)

// Pagination defaults
const (
	DefaultPaginationLimit = 10
	MaxPaginationLimit     = 100
)

// Error messages
const (
	ErrUnauthorized   = "Unauthorized access"
	ErrForbidden      = "Access forbidden"
	ErrRecordNotFound = "Record not found"
	ErrInternalServer = "Internal server error"
)
