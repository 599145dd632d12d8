package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"session-hub/app/port"
)

const (
	// SessionCookieName carries the opaque session ID issued at sign-in.
	SessionCookieName = "session_id"

	// stateCookieName carries the OAuth CSRF state between the consent
	// redirect and the callback. Short-lived on purpose.
	stateCookieName = "oauth_state"

	stateCookieTTL = 10 * time.Minute
)

// AuthHandler drives the browser-facing sign-in flow: consent
// redirect, OAuth callback and sign-out.
type AuthHandler struct {
	signIn    port.SignInUsecase
	cookieTTL time.Duration
	secure    bool
	logger    *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(signIn port.SignInUsecase, cookieTTL time.Duration, secure bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		signIn:    signIn,
		cookieTTL: cookieTTL,
		secure:    secure,
		logger:    logger,
	}
}

// SignIn redirects the browser to the provider consent screen. The
// state value is minted per request and pinned in a short-lived
// cookie so the callback can reject forged redirects.
func (h *AuthHandler) SignIn(c echo.Context) error {
	state := uuid.NewString()

	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(stateCookieTTL.Seconds()),
	})

	return c.Redirect(http.StatusTemporaryRedirect, h.signIn.AuthCodeURL(state))
}

// Callback completes the OAuth flow: it validates the state, exchanges
// the authorization code and sets the session cookie.
func (h *AuthHandler) Callback(c echo.Context) error {
	ctx := c.Request().Context()

	stateCookie, err := c.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != c.QueryParam("state") {
		h.logger.Warn("oauth state mismatch", "ip", c.RealIP())
		return c.Redirect(http.StatusTemporaryRedirect, "/sign-in")
	}
	h.clearCookie(c, stateCookieName)

	if errParam := c.QueryParam("error"); errParam != "" {
		// The user declined consent or the provider rejected the flow.
		h.logger.Info("provider returned error on callback", "error", errParam)
		return c.Redirect(http.StatusTemporaryRedirect, "/")
	}

	code := c.QueryParam("code")
	if code == "" {
		return c.Redirect(http.StatusTemporaryRedirect, "/sign-in")
	}

	session, err := h.signIn.CompleteSignIn(ctx, code)
	if err != nil {
		h.logger.Error("sign-in failed", "error", err)
		return c.Redirect(http.StatusTemporaryRedirect, "/sign-in")
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    session.SessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.cookieTTL.Seconds()),
	})

	return c.Redirect(http.StatusTemporaryRedirect, "/home")
}

// SignOut drops the session binding and clears the cookie. Always
// lands on the public page, even when the binding was already gone.
func (h *AuthHandler) SignOut(c echo.Context) error {
	ctx := c.Request().Context()

	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.signIn.SignOut(ctx, cookie.Value); err != nil {
			h.logger.Warn("sign-out cleanup failed", "error", err)
		}
	}

	h.clearCookie(c, SessionCookieName)

	return c.Redirect(http.StatusTemporaryRedirect, "/")
}

func (h *AuthHandler) clearCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
