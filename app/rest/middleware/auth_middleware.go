package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"session-hub/app/port"
)

// SessionCookieName mirrors the cookie set by the sign-in handler.
const SessionCookieName = "session_id"

// AuthMiddleware gates routes behind session validation.
type AuthMiddleware struct {
	auth   port.SessionAuthenticator
	logger *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(auth port.SessionAuthenticator, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		auth:   auth,
		logger: logger,
	}
}

// RequireSession redirects to the sign-in page unless the request
// carries a session cookie that validates. Validation may refresh the
// user's access token as a side effect; the handler never sees that.
func (m *AuthMiddleware) RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusTemporaryRedirect, "/sign-in")
			}

			if !m.auth.IsAuthenticated(ctx, cookie.Value) {
				m.logger.Debug("rejected unauthenticated request", "path", c.Request().URL.Path)
				return c.Redirect(http.StatusTemporaryRedirect, "/sign-in")
			}

			return next(c)
		}
	}
}
