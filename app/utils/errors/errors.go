package errors

import (
	"errors"
	"fmt"
	"net/http"

	"session-hub/app/domain"
)

// ErrorCode represents specific error types
type ErrorCode string

const (
	// Authentication errors
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeVerificationFailed ErrorCode = "VERIFICATION_FAILED"
	ErrCodeRefreshFailed      ErrorCode = "REFRESH_FAILED"
	ErrCodeInvalidState       ErrorCode = "INVALID_STATE"

	// User errors
	ErrCodeUserNotFound ErrorCode = "USER_NOT_FOUND"

	// System errors
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
	ErrCodeProviderError ErrorCode = "PROVIDER_ERROR"
	ErrCodeConfigError   ErrorCode = "CONFIG_ERROR"

	// Rate limiting
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"

	// Generic errors
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
)

// AppError represents an application error with additional context
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause adds a cause to the error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// New creates a new AppError
func New(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// FromDomain maps a domain error to an AppError with an HTTP status.
// Auth failures all map to 401; the route layer redirects rather than
// exposing the distinction to the client.
func FromDomain(err error) *AppError {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return New(ErrCodeSessionNotFound, "session not found", http.StatusUnauthorized).WithCause(err)
	case errors.Is(err, domain.ErrUserNotFound):
		return New(ErrCodeUserNotFound, "user not found", http.StatusUnauthorized).WithCause(err)
	case errors.Is(err, domain.ErrTokenVerificationFailed):
		return New(ErrCodeVerificationFailed, "access token verification failed", http.StatusUnauthorized).WithCause(err)
	case errors.Is(err, domain.ErrNoRefreshToken):
		return New(ErrCodeUnauthorized, "re-authentication required", http.StatusUnauthorized).WithCause(err)
	case errors.Is(err, domain.ErrTokenRefreshFailed):
		return New(ErrCodeRefreshFailed, "access token refresh failed", http.StatusUnauthorized).WithCause(err)
	case errors.Is(err, domain.ErrPersistenceFailed):
		return New(ErrCodeDatabaseError, "persistence failed", http.StatusInternalServerError).WithCause(err)
	default:
		return New(ErrCodeInternalError, "internal error", http.StatusInternalServerError).WithCause(err)
	}
}
