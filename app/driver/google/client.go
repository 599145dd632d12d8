package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"session-hub/app/config"
)

// Client talks to Google's token endpoints directly. It implements
// the raw wire contract; error classification into domain errors is
// the gateway's job.
type Client struct {
	tokenInfoURL string
	tokenURL     string
	clientID     string
	clientSecret string
	verifyHTTP   *http.Client
	refreshHTTP  *http.Client
	logger       *slog.Logger
}

// NewClient creates a new Google token client. Verification and
// refresh use separate HTTP clients because they carry different
// timeout bounds (10s / 15s by default).
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return nil, fmt.Errorf("google client credentials are required")
	}
	if !isValidURL(cfg.TokenInfoURL) {
		return nil, fmt.Errorf("invalid token info URL: %s", cfg.TokenInfoURL)
	}
	if !isValidURL(cfg.TokenURL) {
		return nil, fmt.Errorf("invalid token URL: %s", cfg.TokenURL)
	}

	return &Client{
		tokenInfoURL: cfg.TokenInfoURL,
		tokenURL:     cfg.TokenURL,
		clientID:     cfg.GoogleClientID,
		clientSecret: cfg.GoogleClientSecret,
		verifyHTTP:   &http.Client{Timeout: cfg.VerifyTimeout},
		refreshHTTP:  &http.Client{Timeout: cfg.RefreshTimeout},
		logger:       logger.With("component", "google_client"),
	}, nil
}

// VerifyAccessToken issues an introspection request for the token.
// A nil return means the provider reported the token valid; any other
// outcome (non-200, transport error, timeout) is an error. Callers
// must not try to tell those cases apart.
func (c *Client) VerifyAccessToken(ctx context.Context, accessToken string) error {
	endpoint := c.tokenInfoURL + "?" + url.Values{"access_token": {accessToken}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build token info request: %w", err)
	}

	resp, err := c.verifyHTTP.Do(req)
	if err != nil {
		return fmt.Errorf("token info request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token info returned status %d", resp.StatusCode)
	}

	return nil
}

// tokenResponse is the token endpoint's refresh grant response. Only
// the access token is consumed; expiry is observed by verification,
// never tracked locally.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// RefreshAccessToken exchanges a refresh token for a new access
// token. It never retries; one POST, one answer.
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	payload := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"refresh_token": {refreshToken},
		"grant_type":    {"refresh_token"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(payload.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.refreshHTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("token refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("token refresh returned status %d: %s", resp.StatusCode, string(body))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("failed to decode token refresh response: %w", err)
	}

	if token.AccessToken == "" {
		return "", fmt.Errorf("token refresh response missing access_token")
	}

	return token.AccessToken, nil
}

func isValidURL(urlStr string) bool {
	if urlStr == "" {
		return false
	}
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}
