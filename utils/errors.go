package utils

import (
	"fmt"
	"net/http"
)

// Machine-readable error kinds. The storefront UI branches on these to show
// "coupon expired" vs "return window closed" instead of a generic failure.
const (
	KindValidation          = "validation_error"
	KindAuthorization       = "authorization_error"
	KindNotFound            = "not_found"
	KindStateConflict       = "state_conflict"
	KindPaymentVerification = "payment_verification_failed"
	KindConcurrency         = "concurrency_conflict"

	KindCouponNotFound    = "coupon_not_found"
	KindCouponExpired     = "coupon_expired"
	KindCouponAlreadyUsed = "coupon_already_used"
	KindMinOrderNotMet    = "min_order_not_met"

	KindCancelWindowClosed = "cancel_window_closed"
	KindReturnWindowClosed = "return_window_closed"
	KindInsufficientStamps = "insufficient_stamps"
)

// AppError represents an application error
type AppError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code int, kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// ValidationErr creates a 400 validation error
func ValidationErr(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, KindValidation, message, err)
}

// AuthorizationErr creates a 403 authorization error
func AuthorizationErr(message string) *AppError {
	return NewAppError(http.StatusForbidden, KindAuthorization, message, nil)
}

// NotFoundErr creates a 404 error
func NotFoundErr(message string) *AppError {
	return NewAppError(http.StatusNotFound, KindNotFound, message, nil)
}

// StateConflictErr creates a 409 error for transitions from an invalid state
func StateConflictErr(message string) *AppError {
	return NewAppError(http.StatusConflict, KindStateConflict, message, nil)
}

// ConcurrencyErr creates a 409 error for a lost conditional write
func ConcurrencyErr(message string) *AppError {
	return NewAppError(http.StatusConflict, KindConcurrency, message, nil)
}

// CouponErr creates a 422 coupon error with a specific sub-kind
func CouponErr(kind, message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, kind, message, nil)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError returns the AppError if the error is an AppError
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return nil
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// HasKind reports whether err is an AppError of the given kind.
func HasKind(err error, kind string) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Kind == kind
	}
	return false
}
