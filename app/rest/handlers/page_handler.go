package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// PageHandler serves the two demo pages: the public landing page and
// the protected home page.
type PageHandler struct {
	logger *slog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(logger *slog.Logger) *PageHandler {
	return &PageHandler{
		logger: logger,
	}
}

// Index serves the public landing page.
func (h *PageHandler) Index(c echo.Context) error {
	return c.HTML(http.StatusOK, `<!DOCTYPE html>
<html>
<head><title>session-hub</title></head>
<body>
<h1>Welcome</h1>
<p><a href="/sign-in">Sign in with Google</a></p>
</body>
</html>`)
}

// Home serves the protected page. The auth middleware has already
// validated the session by the time this runs.
func (h *PageHandler) Home(c echo.Context) error {
	return c.HTML(http.StatusOK, `<!DOCTYPE html>
<html>
<head><title>session-hub</title></head>
<body>
<h1>Home</h1>
<p>You are signed in.</p>
<p><a href="/sign-out">Sign out</a></p>
</body>
</html>`)
}
