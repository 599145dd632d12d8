package port

//go:generate mockgen -source=auth_port.go -destination=../mocks/mock_auth_port.go -package=mocks

import (
	"context"

	"session-hub/app/domain"
)

// SessionAuthenticator answers whether a session is currently
// authenticated, refreshing the underlying access token on demand.
type SessionAuthenticator interface {
	// IsAuthenticated resolves the session to a user, verifies the
	// user's access token and attempts at most one refresh when
	// verification fails. Every failure mode degrades to false.
	IsAuthenticated(ctx context.Context, sessionID string) bool
}

// SignInUsecase drives the OAuth callback side: it turns an
// authorization code into a persisted user and a fresh session.
type SignInUsecase interface {
	// AuthCodeURL returns the provider authorization URL for the
	// given CSRF state value.
	AuthCodeURL(state string) string

	// CompleteSignIn exchanges the authorization code, upserts the
	// user record and mints a new session bound to it.
	CompleteSignIn(ctx context.Context, code string) (*domain.Session, error)

	// SignOut drops the session binding. Best effort; a missing
	// session is not an error.
	SignOut(ctx context.Context, sessionID string) error
}

// TokenVerifier checks whether a provider access token is still valid.
// The boolean collapses "token invalid" and "verification service
// unreachable" into a single signal by design.
type TokenVerifier interface {
	Verify(ctx context.Context, accessToken string) bool
}

// TokenRefresher exchanges a refresh token for a new access token.
type TokenRefresher interface {
	// Refresh returns the new access token, or
	// domain.ErrTokenRefreshFailed on any non-200 response, timeout
	// or malformed payload. It never retries.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// IdentityExchanger builds consent URLs and performs the
// authorization-code exchange, returning the verified identity
// together with its provider tokens.
type IdentityExchanger interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*domain.User, error)
}
