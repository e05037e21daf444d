package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents an error code
type ErrorCode string

const (
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeAuth         ErrorCode = "AUTH_ERROR"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeNotification ErrorCode = "NOTIFICATION_ERROR"
	ErrCodeStore        ErrorCode = "STORE_ERROR"
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error code to an HTTP status. NotificationError never
// reaches a client, but maps to 500 as a safety net.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeAuth:
		return http.StatusUnauthorized
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeStore:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with an AppError
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation creates a validation error
func Validation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

// Auth creates an authorization error
func Auth(message string) *AppError {
	return New(ErrCodeAuth, message)
}

// NotFound creates a not-found error
func NotFound(message string) *AppError {
	return New(ErrCodeNotFound, message)
}

// Notification wraps an outbound-email failure. These are logged by the
// caller and never surfaced to a client.
func Notification(message string, err error) *AppError {
	return Wrap(ErrCodeNotification, message, err)
}

// Store wraps a record-store failure
func Store(message string, err error) *AppError {
	return Wrap(ErrCodeStore, message, err)
}

// IsNotFound checks if error is NotFound
func IsNotFound(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == ErrCodeNotFound
	}
	return false
}

// IsValidation checks if error is a ValidationError
func IsValidation(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == ErrCodeValidation
	}
	return false
}
