package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"session-hub/app/utils/validator"
)

// Config holds all configuration for session-hub
type Config struct {
	// Server
	Port     string `json:"port" yaml:"port" validate:"required"`
	Host     string `json:"host" yaml:"host" validate:"required"`
	LogLevel string `json:"log_level" yaml:"log_level" validate:"required,log_level"`

	// Public base URL of this service; the OAuth redirect URL is
	// derived from it.
	ServerURL string `json:"server_url" yaml:"server_url" validate:"required,url"`

	// Database
	DatabaseURL string `json:"database_url" yaml:"database_url" validate:"required"`

	// Google OAuth
	GoogleClientID     string `json:"google_client_id" yaml:"google_client_id" validate:"required"`
	GoogleClientSecret string `json:"google_client_secret" yaml:"google_client_secret" validate:"required"`

	// Provider endpoints; overridable for tests and proxies
	TokenInfoURL string `json:"token_info_url" yaml:"token_info_url" validate:"required,url"`
	TokenURL     string `json:"token_url" yaml:"token_url" validate:"required,url"`
	OIDCIssuer   string `json:"oidc_issuer" yaml:"oidc_issuer" validate:"required,url"`

	// Outbound call bounds
	VerifyTimeout  time.Duration `json:"verify_timeout" yaml:"verify_timeout"`
	RefreshTimeout time.Duration `json:"refresh_timeout" yaml:"refresh_timeout"`

	// Session cache
	SessionCacheBackend string        `json:"session_cache_backend" yaml:"session_cache_backend" validate:"required,cache_backend"`
	SessionCacheTTL     time.Duration `json:"session_cache_ttl" yaml:"session_cache_ttl"`
	RedisAddr           string        `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword       string        `json:"redis_password" yaml:"redis_password"`

	// Cookie lifetime presented to the browser
	SessionCookieTTL time.Duration `json:"session_cookie_ttl" yaml:"session_cookie_ttl"`
}

// Default provider endpoints. TokenInfoURL takes the access token as
// a query parameter; TokenURL takes a form-encoded refresh grant.
const (
	defaultTokenInfoURL = "https://www.googleapis.com/oauth2/v1/tokeninfo"
	defaultTokenURL     = "https://oauth2.googleapis.com/token"
	defaultOIDCIssuer   = "https://accounts.google.com"
)

// Load reads configuration from an optional YAML file (CONFIG_FILE)
// and environment variables. Environment always wins over the file.
func Load() (*Config, error) {
	config := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.loadFile(path); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	config.loadEnv()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func defaults() *Config {
	return &Config{
		Port:                "3000",
		Host:                "0.0.0.0",
		LogLevel:            "info",
		TokenInfoURL:        defaultTokenInfoURL,
		TokenURL:            defaultTokenURL,
		OIDCIssuer:          defaultOIDCIssuer,
		VerifyTimeout:       10 * time.Second,
		RefreshTimeout:      15 * time.Second,
		SessionCacheBackend: "memory",
		SessionCacheTTL:     0, // sessions never expire server-side
		SessionCookieTTL:    24 * time.Hour,
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) loadEnv() {
	setIfPresent(&c.Port, "PORT")
	setIfPresent(&c.Host, "HOST")
	setIfPresent(&c.LogLevel, "LOG_LEVEL")
	setIfPresent(&c.ServerURL, "SERVER_URL")
	setIfPresent(&c.DatabaseURL, "DATABASE_URL")
	setIfPresent(&c.GoogleClientID, "GOOGLE_CLIENT_ID")
	setIfPresent(&c.GoogleClientSecret, "GOOGLE_CLIENT_SECRET")
	setIfPresent(&c.TokenInfoURL, "TOKEN_INFO_URL")
	setIfPresent(&c.TokenURL, "TOKEN_URL")
	setIfPresent(&c.OIDCIssuer, "OIDC_ISSUER")
	setIfPresent(&c.SessionCacheBackend, "SESSION_CACHE_BACKEND")
	setIfPresent(&c.RedisAddr, "REDIS_ADDR")
	setIfPresent(&c.RedisPassword, "REDIS_PASSWORD")

	setDurationIfPresent(&c.VerifyTimeout, "VERIFY_TIMEOUT")
	setDurationIfPresent(&c.RefreshTimeout, "REFRESH_TIMEOUT")
	setDurationIfPresent(&c.SessionCacheTTL, "SESSION_CACHE_TTL")
	setDurationIfPresent(&c.SessionCookieTTL, "SESSION_COOKIE_TTL")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validator.New().Validate(c); err != nil {
		return err
	}

	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	if c.VerifyTimeout <= 0 || c.RefreshTimeout <= 0 {
		return fmt.Errorf("outbound timeouts must be positive")
	}

	if strings.EqualFold(c.SessionCacheBackend, "redis") && c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required when the session cache backend is redis")
	}

	if c.SessionCookieTTL < time.Minute {
		return fmt.Errorf("session cookie TTL must be at least 1 minute, got: %v", c.SessionCookieTTL)
	}

	return nil
}

// RedirectURL returns the OAuth callback URL served by this process.
func (c *Config) RedirectURL() string {
	return strings.TrimSuffix(c.ServerURL, "/") + "/callback/auth"
}

// Helper functions

func setIfPresent(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func setDurationIfPresent(target *time.Duration, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			*target = parsed
		}
	}
}
