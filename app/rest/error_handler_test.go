package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"session-hub/app/domain"
	apperrors "session-hub/app/utils/errors"
	"session-hub/app/utils/logger"
)

func newErrorEcho(t *testing.T) *echo.Echo {
	t.Helper()

	testLogger, err := logger.New("error")
	require.NoError(t, err)

	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(testLogger)
	return e
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) apperrors.AppError {
	t.Helper()
	var body apperrors.AppError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   apperrors.ErrorCode
	}{
		{
			name:       "app error passes through",
			err:        apperrors.New(apperrors.ErrCodeInvalidState, "state mismatch", http.StatusBadRequest),
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.ErrCodeInvalidState,
		},
		{
			name:       "echo http error keeps its status",
			err:        echo.NewHTTPError(http.StatusNotFound, "not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   apperrors.ErrCodeNotFound,
		},
		{
			name:       "wrapped store failure maps to 500",
			err:        fmt.Errorf("upsert: %w", domain.ErrPersistenceFailed),
			wantStatus: http.StatusInternalServerError,
			wantCode:   apperrors.ErrCodeDatabaseError,
		},
		{
			name:       "session not found maps to 401",
			err:        domain.ErrSessionNotFound,
			wantStatus: http.StatusUnauthorized,
			wantCode:   apperrors.ErrCodeSessionNotFound,
		},
		{
			name:       "unclassified error maps to internal",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   apperrors.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newErrorEcho(t)
			e.GET("/boom", func(c echo.Context) error {
				return tt.err
			})

			req := httptest.NewRequest(http.MethodGet, "/boom", nil)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeErrorBody(t, rec)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := newErrorEcho(t)
	e.GET("/late", func(c echo.Context) error {
		if err := c.String(http.StatusOK, "partial"); err != nil {
			return err
		}
		return errors.New("too late")
	})

	req := httptest.NewRequest(http.MethodGet, "/late", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	// A committed response stays untouched.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}
