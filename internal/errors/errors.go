// Package errors provides custom error types for the Daechul API.
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

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrUserNotFound       = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Asset errors.
var (
	ErrTokenNotFound        = &AppError{Code: "TOKEN_NOT_FOUND", Message: "Token not found", StatusCode: http.StatusNotFound}
	ErrStockAccountNotFound = &AppError{Code: "STOCK_ACCOUNT_NOT_FOUND", Message: "Stock account not found", StatusCode: http.StatusNotFound}
	ErrInsufficientBalance  = &AppError{Code: "INSUFFICIENT_BALANCE", Message: "Insufficient token balance", StatusCode: http.StatusBadRequest}
)

// Collateral errors.
var (
	ErrAlreadyPledged     = &AppError{Code: "ALREADY_PLEDGED", Message: "This asset is already pledged as collateral", StatusCode: http.StatusConflict}
	ErrCollateralNotFound = &AppError{Code: "COLLATERAL_NOT_FOUND", Message: "Collateral not found", StatusCode: http.StatusNotFound}
)

// Loan errors.
var (
	ErrLoanNotFound = &AppError{Code: "LOAN_NOT_FOUND", Message: "Loan not found", StatusCode: http.StatusNotFound}
	ErrCapExceeded  = &AppError{Code: "CAP_EXCEEDED", Message: "Requested amount exceeds the maximum borrowable amount", StatusCode: http.StatusBadRequest}
)
