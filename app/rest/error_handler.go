package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "session-hub/app/utils/errors"
)

// NewHTTPErrorHandler maps errors escaping handlers to the JSON error
// envelope. AppErrors carry their own code and status; echo's own
// HTTPErrors pass through; anything else is classified via the domain
// error mapping so store and provider failures get sane statuses.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var appErr *apperrors.AppError
		switch {
		case errors.As(err, &appErr):
			// use as-is
		default:
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				message, ok := httpErr.Message.(string)
				if !ok {
					message = http.StatusText(httpErr.Code)
				}
				appErr = apperrors.New(codeForStatus(httpErr.Code), message, httpErr.Code)
			} else {
				appErr = apperrors.FromDomain(err)
			}
		}

		if appErr.StatusCode >= http.StatusInternalServerError {
			logger.Error("request failed", "code", appErr.Code, "error", err)
		}

		if c.Request().Method == http.MethodHead {
			if err := c.NoContent(appErr.StatusCode); err != nil {
				logger.Error("failed to write error response", "error", err)
			}
			return
		}

		if err := c.JSON(appErr.StatusCode, appErr); err != nil {
			logger.Error("failed to write error response", "error", err)
		}
	}
}

func codeForStatus(status int) apperrors.ErrorCode {
	switch status {
	case http.StatusNotFound:
		return apperrors.ErrCodeNotFound
	case http.StatusBadRequest:
		return apperrors.ErrCodeBadRequest
	case http.StatusUnauthorized:
		return apperrors.ErrCodeUnauthorized
	case http.StatusTooManyRequests:
		return apperrors.ErrCodeRateLimitExceeded
	default:
		return apperrors.ErrCodeInternalError
	}
}
