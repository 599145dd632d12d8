package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"session-hub/app/domain"
	"session-hub/app/port"
	"session-hub/app/utils/security"
)

// SignInUsecase is the producer side of the session machinery: it
// turns a provider authorization code into a persisted user record
// and a freshly minted session binding.
type SignInUsecase struct {
	provider port.IdentityExchanger
	users    port.UserRepository
	cache    port.SessionCache
	logger   *slog.Logger
}

// NewSignInUsecase creates a new SignInUsecase instance
func NewSignInUsecase(
	provider port.IdentityExchanger,
	users port.UserRepository,
	cache port.SessionCache,
	logger *slog.Logger,
) *SignInUsecase {
	return &SignInUsecase{
		provider: provider,
		users:    users,
		cache:    cache,
		logger:   logger.With("component", "sign_in"),
	}
}

var _ port.SignInUsecase = (*SignInUsecase)(nil)

// AuthCodeURL returns the provider consent URL for the state value.
func (uc *SignInUsecase) AuthCodeURL(state string) string {
	return uc.provider.AuthCodeURL(state)
}

// CompleteSignIn exchanges the code, upserts the user and binds a new
// session. Minting a fresh session ID for a returning user orphans
// the previous one; orphaned IDs are never actively invalidated.
func (uc *SignInUsecase) CompleteSignIn(ctx context.Context, code string) (*domain.Session, error) {
	user, err := uc.provider.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	if err := uc.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to persist user: %w", err)
	}

	sessionID, err := security.GenerateURLToken(domain.SessionIDLength)
	if err != nil {
		return nil, fmt.Errorf("failed to mint session id: %w", err)
	}

	session, err := domain.NewSession(sessionID, user.ID)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, session.SessionID, session.UserID); err != nil {
		return nil, fmt.Errorf("failed to bind session: %w", err)
	}

	uc.logger.Info("sign-in completed", "user_id", user.ID)

	return session, nil
}

// SignOut drops the session binding. The cookie clear is the route
// layer's job; a stale or unknown session ID here is not an error.
func (uc *SignInUsecase) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := uc.cache.Delete(ctx, sessionID); err != nil {
		uc.logger.Warn("failed to delete session binding", "error", err)
		return err
	}
	return nil
}
