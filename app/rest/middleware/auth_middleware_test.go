package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"session-hub/app/mocks"
	"session-hub/app/utils/logger"
)

func newAuthMiddleware(t *testing.T) (*AuthMiddleware, *mocks.MockSessionAuthenticator) {
	t.Helper()

	ctrl := gomock.NewController(t)
	auth := mocks.NewMockSessionAuthenticator(ctrl)

	testLogger, err := logger.New("error")
	require.NoError(t, err)

	return NewAuthMiddleware(auth, testLogger), auth
}

func TestRequireSession(t *testing.T) {
	okHandler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	t.Run("no cookie redirects to sign-in", func(t *testing.T) {
		m, _ := newAuthMiddleware(t)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/home", nil)
		rec := httptest.NewRecorder()

		err := m.RequireSession()(okHandler)(e.NewContext(req, rec))

		require.NoError(t, err)
		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, "/sign-in", rec.Header().Get("Location"))
	})

	t.Run("empty cookie redirects to sign-in", func(t *testing.T) {
		m, _ := newAuthMiddleware(t)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/home", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: ""})
		rec := httptest.NewRecorder()

		err := m.RequireSession()(okHandler)(e.NewContext(req, rec))

		require.NoError(t, err)
		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	})

	t.Run("rejected session redirects to sign-in", func(t *testing.T) {
		m, auth := newAuthMiddleware(t)

		auth.EXPECT().IsAuthenticated(gomock.Any(), "stale").Return(false)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/home", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale"})
		rec := httptest.NewRecorder()

		err := m.RequireSession()(okHandler)(e.NewContext(req, rec))

		require.NoError(t, err)
		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, "/sign-in", rec.Header().Get("Location"))
	})

	t.Run("valid session reaches the handler", func(t *testing.T) {
		m, auth := newAuthMiddleware(t)

		auth.EXPECT().IsAuthenticated(gomock.Any(), "sess-1").Return(true)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/home", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})
		rec := httptest.NewRecorder()

		err := m.RequireSession()(okHandler)(e.NewContext(req, rec))

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
	})
}
