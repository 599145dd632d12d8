package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "session-hub/app/utils/errors"
)

func TestSecurityHeaders(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler := SecurityHeaders()(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	err := handler(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestRateLimit_AllowsWithinBurst(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter()

	handler := rl.RateLimit()(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/home", nil)
		req.Header.Set("X-Real-IP", "203.0.113.7")
		rec := httptest.NewRecorder()

		err := handler(e.NewContext(req, rec))

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimit_BlocksAuthBurst(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter()

	handler := rl.RateLimit()(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	blocked := false
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/sign-in", nil)
		req.Header.Set("X-Real-IP", "203.0.113.8")
		rec := httptest.NewRecorder()

		err := handler(e.NewContext(req, rec))
		require.NoError(t, err)

		if rec.Code == http.StatusTooManyRequests {
			var body apperrors.AppError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, apperrors.ErrCodeRateLimitExceeded, body.Code)
			blocked = true
			break
		}
	}

	assert.True(t, blocked, "sign-in burst should exhaust the rate limit")
}

func TestRateLimit_IsolatesClients(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter()

	handler := rl.RateLimit()(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// Exhaust one client's auth budget.
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/sign-in", nil)
		req.Header.Set("X-Real-IP", "203.0.113.9")
		rec := httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
	}

	// A different client is unaffected.
	req := httptest.NewRequest(http.MethodGet, "/sign-in", nil)
	req.Header.Set("X-Real-IP", "203.0.113.10")
	rec := httptest.NewRecorder()

	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}
