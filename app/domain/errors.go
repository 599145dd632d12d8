package domain

import "errors"

// Session and token errors
var (
	// ErrSessionNotFound is returned by the session cache when the
	// session ID has no binding. Absence is a defined result, not an
	// exceptional condition, and must never be conflated with an
	// empty value or a transport error.
	ErrSessionNotFound = errors.New("session not found")

	// ErrUserNotFound is returned by the user repository when no
	// record exists for the requested ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrTokenVerificationFailed covers both "token is invalid" and
	// "verification endpoint unreachable". The two are deliberately
	// indistinguishable; either one triggers a refresh attempt.
	ErrTokenVerificationFailed = errors.New("access token verification failed")

	// ErrNoRefreshToken means the user never received a refresh token
	// from the provider, so an expired access token cannot be
	// recovered without a fresh sign-in.
	ErrNoRefreshToken = errors.New("no refresh token available")

	// ErrTokenRefreshFailed covers non-200 responses, timeouts and
	// malformed payloads from the token endpoint.
	ErrTokenRefreshFailed = errors.New("access token refresh failed")

	// ErrPersistenceFailed wraps store write failures.
	ErrPersistenceFailed = errors.New("persistence failed")
)

// AuthReason classifies why a session validation resolved the way it
// did. Reasons are surfaced to logging only; callers of the
// authenticator see a plain boolean.
type AuthReason string

const (
	ReasonAuthenticated   AuthReason = "authenticated"
	ReasonTokenRefreshed  AuthReason = "token_refreshed"
	ReasonSessionNotFound AuthReason = "session_not_found"
	ReasonUserNotFound    AuthReason = "user_not_found"
	ReasonNoRefreshToken  AuthReason = "no_refresh_token"
	ReasonRefreshFailed   AuthReason = "refresh_failed"
	ReasonStoreFailed     AuthReason = "store_failed"
)
