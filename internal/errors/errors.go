// Package errors provides custom error types for the Pesafolio API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Platform errors.
var (
	ErrPlatformNotFound = &AppError{Code: "PLATFORM_NOT_FOUND", Message: "Connected platform not found", StatusCode: http.StatusNotFound}
)

// Holding errors.
var (
	ErrHoldingNotFound = &AppError{Code: "HOLDING_NOT_FOUND", Message: "Holding not found", StatusCode: http.StatusNotFound}
)

// Transaction errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrValidationFailed    = &AppError{Code: "VALIDATION_FAILED", Message: "Transaction validation failed", StatusCode: http.StatusBadRequest}
)

// Market data errors.
var (
	ErrInvalidSymbols      = &AppError{Code: "INVALID_SYMBOLS", Message: "symbols must be 1-10 tickers of letters, digits, dots, or dashes", StatusCode: http.StatusBadRequest}
	ErrQuoteNotConfigured  = &AppError{Code: "QUOTE_NOT_CONFIGURED", Message: "Market data provider is not configured", StatusCode: http.StatusInternalServerError}
	ErrQuoteUpstreamFailed = &AppError{Code: "QUOTE_UPSTREAM_FAILED", Message: "Failed to fetch market prices", StatusCode: http.StatusInternalServerError}
)

// Insight errors.
var (
	ErrInsightBadInput      = &AppError{Code: "INSIGHT_BAD_INPUT", Message: "portfolioData must contain 1-100 holdings and transactions at most 100 entries", StatusCode: http.StatusBadRequest}
	ErrInsightUpstreamError = &AppError{Code: "INSIGHT_UPSTREAM_ERROR", Message: "Failed to generate insights", StatusCode: http.StatusInternalServerError}
)
