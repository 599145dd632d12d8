package usecase

import (
	"context"
	"errors"
	"log/slog"

	"session-hub/app/domain"
	"session-hub/app/port"
)

// SessionAuthUsecase implements the session validation and token
// refresh state machine. Given an opaque session ID it resolves the
// user, verifies the provider access token and, when verification
// fails, attempts exactly one refresh and persists the result.
//
// Two concurrent calls for the same session may both observe a stale
// token and both refresh it. That race is tolerated rather than
// serialized: the provider issues a fresh valid token on every
// refresh and the store write is last-writer-wins on a single column,
// so duplicate refreshes are harmless.
type SessionAuthUsecase struct {
	cache     port.SessionCache
	users     port.UserRepository
	verifier  port.TokenVerifier
	refresher port.TokenRefresher
	logger    *slog.Logger
}

// NewSessionAuthUsecase creates a new SessionAuthUsecase instance
func NewSessionAuthUsecase(
	cache port.SessionCache,
	users port.UserRepository,
	verifier port.TokenVerifier,
	refresher port.TokenRefresher,
	logger *slog.Logger,
) *SessionAuthUsecase {
	return &SessionAuthUsecase{
		cache:     cache,
		users:     users,
		verifier:  verifier,
		refresher: refresher,
		logger:    logger.With("component", "session_auth"),
	}
}

var _ port.SessionAuthenticator = (*SessionAuthUsecase)(nil)

// IsAuthenticated reports whether the session is currently
// authenticated. Every failure mode fails closed to false; the
// classified reason goes to the log and nowhere else.
func (uc *SessionAuthUsecase) IsAuthenticated(ctx context.Context, sessionID string) bool {
	authenticated, reason := uc.authenticate(ctx, sessionID)

	if authenticated {
		uc.logger.Debug("session validated", "reason", reason)
	} else {
		uc.logger.Info("session rejected", "reason", reason)
	}

	return authenticated
}

func (uc *SessionAuthUsecase) authenticate(ctx context.Context, sessionID string) (bool, domain.AuthReason) {
	userID, err := uc.cache.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			uc.logger.Error("session cache lookup failed", "error", err)
		}
		return false, domain.ReasonSessionNotFound
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// The cache referenced a user the store no longer has.
			uc.logger.Warn("session references missing user", "user_id", userID)
			return false, domain.ReasonUserNotFound
		}
		uc.logger.Error("user lookup failed", "user_id", userID, "error", err)
		return false, domain.ReasonStoreFailed
	}

	// A false here covers both "token invalid" and "verifier
	// unreachable"; either way the refresh path is the answer.
	if uc.verifier.Verify(ctx, user.AccessToken) {
		return true, domain.ReasonAuthenticated
	}

	if !user.HasRefreshToken() {
		return false, domain.ReasonNoRefreshToken
	}

	accessToken, err := uc.refresher.Refresh(ctx, *user.RefreshToken)
	if err != nil {
		return false, domain.ReasonRefreshFailed
	}

	// Partial update: the refresh token field stays unset so the
	// stored one survives.
	user.ApplyTokenUpdate(domain.TokenUpdate{AccessToken: accessToken})

	if err := uc.users.Upsert(ctx, user); err != nil {
		uc.logger.Error("failed to persist refreshed token", "user_id", user.ID, "error", err)
		return false, domain.ReasonStoreFailed
	}

	return true, domain.ReasonTokenRefreshed
}
