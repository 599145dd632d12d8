package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"session-hub/app/config"
	"session-hub/app/domain"
)

// OAuthProvider drives the authorization-code side of the sign-in
// flow: building the consent URL, exchanging the code and verifying
// the returned ID token.
type OAuthProvider struct {
	oauthConfig *oauth2.Config
	verifier    *oidc.IDTokenVerifier
	logger      *slog.Logger
}

// NewOAuthProvider performs OIDC discovery against the configured
// issuer and prepares the oauth2 exchange config.
func NewOAuthProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*OAuthProvider, error) {
	oidcProvider, err := oidc.NewProvider(ctx, cfg.OIDCIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to init oidc provider: %w", err)
	}

	verifier := oidcProvider.Verifier(&oidc.Config{
		ClientID: cfg.GoogleClientID,
	})

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.RedirectURL(),
		Endpoint:     oidcProvider.Endpoint(),
		Scopes: []string{
			oidc.ScopeOpenID,
			"profile",
			"email",
		},
	}

	return &OAuthProvider{
		oauthConfig: oauthCfg,
		verifier:    verifier,
		logger:      logger.With("component", "oauth_provider"),
	}, nil
}

// AuthCodeURL builds the consent URL. Offline access is requested so
// the provider issues a refresh token on first consent.
func (p *OAuthProvider) AuthCodeURL(state string) string {
	return p.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// ExchangeCode exchanges the authorization code for provider tokens,
// verifies the ID token and returns the identity with its tokens
// attached. The refresh token is nil when the provider withheld one
// (every consent after the first).
func (p *OAuthProvider) ExchangeCode(ctx context.Context, code string) (*domain.User, error) {
	token, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.New("provider did not return id_token")
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("id_token verification failed: %w", err)
	}

	var claims struct {
		Subject string `json:"sub"`
		Name    string `json:"name"`
		Email   string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("id_token claims parse failed: %w", err)
	}

	if claims.Subject == "" {
		return nil, errors.New("id_token missing subject claim")
	}

	name := claims.Name
	if name == "" {
		name = claims.Email
	}

	var refreshToken *string
	if token.RefreshToken != "" {
		refreshToken = &token.RefreshToken
	}

	p.logger.Info("authorization code exchanged",
		"subject_present", claims.Subject != "",
		"refresh_token_granted", refreshToken != nil)

	return domain.NewUser(claims.Subject, name, token.AccessToken, refreshToken)
}
