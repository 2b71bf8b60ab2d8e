// Package errors provides custom error types for the FinanceHouse API.
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
	ErrUserInactive   = &AppError{Code: "USER_INACTIVE", Message: "User account is deactivated", StatusCode: http.StatusConflict}
)

// Money and amount errors.
var (
	ErrInvalidAmount    = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be a positive value with at most two decimal places", StatusCode: http.StatusBadRequest}
	ErrCurrencyMismatch = &AppError{Code: "CURRENCY_MISMATCH", Message: "Cannot operate on amounts with different currencies", StatusCode: http.StatusBadRequest}
)

// Category errors.
var (
	ErrInvalidCategory      = &AppError{Code: "INVALID_CATEGORY", Message: "Category name is blank or too long", StatusCode: http.StatusBadRequest}
	ErrCategoryTypeMismatch = &AppError{Code: "CATEGORY_TYPE_MISMATCH", Message: "Category kind does not match the transaction type", StatusCode: http.StatusBadRequest}
	ErrCategoryNotFound     = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
)

// Transaction errors.
var (
	ErrTransactionNotFound    = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransactionType = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Unsupported transaction type", StatusCode: http.StatusBadRequest}
	ErrTransactionInactive    = &AppError{Code: "TRANSACTION_INACTIVE", Message: "Transaction has been deleted", StatusCode: http.StatusConflict}
	ErrTransactionActive      = &AppError{Code: "TRANSACTION_ACTIVE", Message: "Transaction is not deleted", StatusCode: http.StatusConflict}
)

// Budget errors.
var (
	ErrBudgetNotFound = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrBudgetOverlap  = &AppError{Code: "BUDGET_OVERLAP", Message: "An active budget already exists for this category and period", StatusCode: http.StatusConflict}
	ErrInvalidPeriod  = &AppError{Code: "INVALID_PERIOD", Message: "Budget period dates are invalid", StatusCode: http.StatusBadRequest}
)

// Goal errors.
var (
	ErrGoalNotFound  = &AppError{Code: "GOAL_NOT_FOUND", Message: "Goal not found", StatusCode: http.StatusNotFound}
	ErrGoalNotActive = &AppError{Code: "GOAL_NOT_ACTIVE", Message: "Goal is not active", StatusCode: http.StatusConflict}
)

// Import errors.
var (
	ErrUnsupportedFormat = &AppError{Code: "UNSUPPORTED_FORMAT", Message: "File format is not supported", StatusCode: http.StatusBadRequest}
	ErrEmptyFile         = &AppError{Code: "EMPTY_FILE", Message: "Uploaded file is empty", StatusCode: http.StatusBadRequest}
	ErrMissingHeader     = &AppError{Code: "MISSING_HEADER", Message: "Spreadsheet is missing required columns", StatusCode: http.StatusBadRequest}
)
