package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"session-hub/app/domain"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := New(ErrCodeSessionNotFound, "session not found", http.StatusUnauthorized)
	assert.Equal(t, "SESSION_NOT_FOUND: session not found", err.Error())

	withCause := err.WithCause(fmt.Errorf("cache miss"))
	assert.Contains(t, withCause.Error(), "caused by: cache miss")
}

func TestAppError_Unwrap(t *testing.T) {
	cause := domain.ErrSessionNotFound
	err := New(ErrCodeSessionNotFound, "session not found", http.StatusUnauthorized).WithCause(cause)

	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
}

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   ErrorCode
		wantStatus int
	}{
		{
			name:       "session not found",
			err:        domain.ErrSessionNotFound,
			wantCode:   ErrCodeSessionNotFound,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "user not found",
			err:        domain.ErrUserNotFound,
			wantCode:   ErrCodeUserNotFound,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "verification failed",
			err:        domain.ErrTokenVerificationFailed,
			wantCode:   ErrCodeVerificationFailed,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no refresh token",
			err:        domain.ErrNoRefreshToken,
			wantCode:   ErrCodeUnauthorized,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "refresh failed",
			err:        domain.ErrTokenRefreshFailed,
			wantCode:   ErrCodeRefreshFailed,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "persistence failed",
			err:        domain.ErrPersistenceFailed,
			wantCode:   ErrCodeDatabaseError,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "wrapped domain error",
			err:        fmt.Errorf("lookup: %w", domain.ErrSessionNotFound),
			wantCode:   ErrCodeSessionNotFound,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown error",
			err:        fmt.Errorf("boom"),
			wantCode:   ErrCodeInternalError,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromDomain(tt.err)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, tt.wantStatus, appErr.StatusCode)
			assert.True(t, errors.Is(appErr, tt.err) || appErr.Cause != nil)
		})
	}
}
