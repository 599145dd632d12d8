package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"session-hub/app/domain"
	"session-hub/app/port"
)

// GoogleTokenClient is the driver surface the gateway consumes.
// Satisfied by driver/google.Client.
type GoogleTokenClient interface {
	VerifyAccessToken(ctx context.Context, accessToken string) error
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
}

// TokenGateway adapts the Google token client to the verifier and
// refresher ports, collapsing driver errors into the domain's
// semantics.
type TokenGateway struct {
	client GoogleTokenClient
	logger *slog.Logger
}

// NewTokenGateway creates a new TokenGateway
func NewTokenGateway(client GoogleTokenClient, logger *slog.Logger) *TokenGateway {
	return &TokenGateway{
		client: client,
		logger: logger.With("component", "token_gateway"),
	}
}

var (
	_ port.TokenVerifier  = (*TokenGateway)(nil)
	_ port.TokenRefresher = (*TokenGateway)(nil)
)

// Verify reports whether the access token is still valid. An
// unreachable verification endpoint produces the same false as an
// invalid token: both roll into the refresh path.
func (g *TokenGateway) Verify(ctx context.Context, accessToken string) bool {
	if err := g.client.VerifyAccessToken(ctx, accessToken); err != nil {
		g.logger.Debug("access token not verified", "error", err)
		return false
	}
	return true
}

// Refresh exchanges the refresh token for a new access token,
// mapping any driver failure to domain.ErrTokenRefreshFailed.
func (g *TokenGateway) Refresh(ctx context.Context, refreshToken string) (string, error) {
	accessToken, err := g.client.RefreshAccessToken(ctx, refreshToken)
	if err != nil {
		g.logger.Warn("token refresh failed", "error", err)
		return "", fmt.Errorf("%w: %v", domain.ErrTokenRefreshFailed, err)
	}
	return accessToken, nil
}
