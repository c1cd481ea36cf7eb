package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Request validation ----

// Validation returns a VALIDATION_FAILED error with a caller-facing message.
func Validation(message string) *AppError {
	return New("VALIDATION_FAILED", message, http.StatusBadRequest)
}

// ---- Payment orchestration ----

// ErrNoPSPAvailable signals failover exhaustion: every candidate adapter was
// attempted or short-circuited by its breaker.
func ErrNoPSPAvailable(attempted int) *AppError {
	return New("NO_PSP_AVAILABLE",
		fmt.Sprintf("No payment provider available after %d attempt(s)", attempted),
		http.StatusServiceUnavailable)
}

// ---- Refund orchestration ----

func ErrPaymentNotFound(paymentKey string) *AppError {
	return New("PAYMENT_NOT_FOUND",
		fmt.Sprintf("No payment found for key %s", paymentKey),
		http.StatusNotFound)
}

func ErrPaymentNotRefundable(status string) *AppError {
	return New("PAYMENT_NOT_REFUNDABLE",
		fmt.Sprintf("Payment with status %s is not eligible for refund", status),
		http.StatusUnprocessableEntity)
}

// ---- Risk alerting ----

func ErrSubscriptionNotFound(entityID string) *AppError {
	return New("SUBSCRIPTION_NOT_FOUND",
		fmt.Sprintf("No webhook subscription found for entity %s", entityID),
		http.StatusNotFound)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrLockTimeout(err error) *AppError {
	return Wrap("SYS_002", "Lock acquisition timeout", http.StatusServiceUnavailable, err)
}

func ErrEventLogError(err error) *AppError {
	return Wrap("SYS_003", "Event log failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
