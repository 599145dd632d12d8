package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"session-hub/app/domain"
	"session-hub/app/driver/cache"
	"session-hub/app/usecase"
	"session-hub/app/utils/logger"
)

// memoryUserRepo mirrors the store's upsert semantics, including the
// sticky refresh token, so the full flow can run without a database.
type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]domain.User)}
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := u
	return &copied, nil
}

func (r *memoryUserRepo) Upsert(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, exists := r.users[user.ID]
	next := *user
	if next.RefreshToken == nil && exists {
		next.RefreshToken = stored.RefreshToken
	}
	r.users[user.ID] = next
	return nil
}

type stubExchanger struct {
	user *domain.User
}

func (s *stubExchanger) AuthCodeURL(state string) string {
	return "https://accounts.example.com/consent?state=" + url.QueryEscape(state)
}

func (s *stubExchanger) ExchangeCode(_ context.Context, code string) (*domain.User, error) {
	copied := *s.user
	return &copied, nil
}

// stubTokenService validates tokens against a set and refreshes to a
// fixed replacement.
type stubTokenService struct {
	mu           sync.Mutex
	valid        map[string]bool
	refreshedTo  string
	refreshCalls int
}

func (s *stubTokenService) Verify(_ context.Context, accessToken string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.valid[accessToken]
}

func (s *stubTokenService) Refresh(_ context.Context, refreshToken string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refreshedTo == "" {
		return "", domain.ErrTokenRefreshFailed
	}
	s.refreshCalls++
	s.valid[s.refreshedTo] = true
	return s.refreshedTo, nil
}

type healthyChecker struct{}

func (healthyChecker) HealthCheck(ctx context.Context) error { return nil }

type signInWorld struct {
	router *echo.Echo
	repo   *memoryUserRepo
	tokens *stubTokenService
}

func newSignInWorld(t *testing.T, user *domain.User, tokens *stubTokenService) *signInWorld {
	t.Helper()

	testLogger, err := logger.New("error")
	require.NoError(t, err)

	sessionCache := cache.NewSessionCache(0)
	repo := newMemoryUserRepo()

	signIn := usecase.NewSignInUsecase(&stubExchanger{user: user}, repo, sessionCache, testLogger)
	sessionAuth := usecase.NewSessionAuthUsecase(sessionCache, repo, tokens, tokens, testLogger)

	router := NewRouter(RouterConfig{
		Logger:        testLogger,
		SessionAuth:   sessionAuth,
		SignIn:        signIn,
		HealthChecker: healthyChecker{},
		CookieTTL:     24 * time.Hour,
		SecureCookies: false,
	})

	return &signInWorld{router: router, repo: repo, tokens: tokens}
}

func cookieByName(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	res := rec.Result()
	defer res.Body.Close()
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// signInThroughCallback drives /sign-in and /callback/auth, returning
// the issued session cookie.
func (w *signInWorld) signInThroughCallback(t *testing.T) *http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/sign-in", nil)
	rec := httptest.NewRecorder()
	w.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	stateCookie := cookieByName(t, rec, "oauth_state")
	require.NotNil(t, stateCookie)

	consentURL, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, stateCookie.Value, consentURL.Query().Get("state"))

	req = httptest.NewRequest(http.MethodGet, "/callback/auth?state="+stateCookie.Value+"&code=code-1", nil)
	req.AddCookie(stateCookie)
	rec = httptest.NewRecorder()
	w.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	require.Equal(t, "/home", rec.Header().Get("Location"))

	sessionCookie := cookieByName(t, rec, "session_id")
	require.NotNil(t, sessionCookie)
	require.Len(t, sessionCookie.Value, domain.SessionIDLength)
	return sessionCookie
}

func TestRouter_SignInToHomeFlow(t *testing.T) {
	refresh := "rt-1"
	user := &domain.User{ID: "u1", Name: "Alice", AccessToken: "at-1", RefreshToken: &refresh}
	tokens := &stubTokenService{valid: map[string]bool{"at-1": true}}

	w := newSignInWorld(t, user, tokens)
	sessionCookie := w.signInThroughCallback(t)

	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	req.AddCookie(sessionCookie)
	rec := httptest.NewRecorder()
	w.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "signed in")
	assert.Equal(t, 0, tokens.refreshCalls)
}

func TestRouter_HomeRefreshesExpiredToken(t *testing.T) {
	refresh := "rt-1"
	user := &domain.User{ID: "u1", Name: "Alice", AccessToken: "at-stale", RefreshToken: &refresh}
	tokens := &stubTokenService{valid: map[string]bool{}, refreshedTo: "at-fresh"}

	w := newSignInWorld(t, user, tokens)
	sessionCookie := w.signInThroughCallback(t)

	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	req.AddCookie(sessionCookie)
	rec := httptest.NewRecorder()
	w.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, tokens.refreshCalls)

	stored, err := w.repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "at-fresh", stored.AccessToken)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, "rt-1", *stored.RefreshToken)
}

func TestRouter_HomeWithoutSessionRedirects(t *testing.T) {
	user := &domain.User{ID: "u1", AccessToken: "at-1"}
	w := newSignInWorld(t, user, &stubTokenService{valid: map[string]bool{"at-1": true}})

	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	rec := httptest.NewRecorder()
	w.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/sign-in", rec.Header().Get("Location"))
}

func TestRouter_SignOutInvalidatesSession(t *testing.T) {
	user := &domain.User{ID: "u1", AccessToken: "at-1"}
	w := newSignInWorld(t, user, &stubTokenService{valid: map[string]bool{"at-1": true}})
	sessionCookie := w.signInThroughCallback(t)

	req := httptest.NewRequest(http.MethodGet, "/sign-out", nil)
	req.AddCookie(sessionCookie)
	rec := httptest.NewRecorder()
	w.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	// The old session ID no longer validates.
	req = httptest.NewRequest(http.MethodGet, "/home", nil)
	req.AddCookie(sessionCookie)
	rec = httptest.NewRecorder()
	w.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/sign-in", rec.Header().Get("Location"))
}
