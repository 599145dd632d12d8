package di

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"

	"session-hub/app/config"
	"session-hub/app/driver/cache"
	"session-hub/app/driver/google"
	"session-hub/app/driver/postgres"
	redisdriver "session-hub/app/driver/redis"
	"session-hub/app/gateway"
	"session-hub/app/port"
	"session-hub/app/rest"
	"session-hub/app/usecase"
)

// Container holds all dependencies for the application
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DB            *postgres.DB
	GoogleClient  *google.Client
	OAuthProvider *google.OAuthProvider
	SessionCache  port.SessionCache

	// Usecases
	SessionAuth port.SessionAuthenticator
	SignIn      port.SignInUsecase

	redisCache *redisdriver.SessionCache
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	var err error

	container.DB, err = postgres.NewConnection(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	container.GoogleClient, err = google.NewClient(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize google client: %w", err)
	}

	container.OAuthProvider, err = google.NewOAuthProvider(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize oauth provider: %w", err)
	}

	if err := container.initSessionCache(cfg, logger); err != nil {
		return nil, err
	}

	userRepository := postgres.NewUserRepository(container.DB.Pool(), logger)
	tokenGateway := gateway.NewTokenGateway(container.GoogleClient, logger)

	container.SessionAuth = usecase.NewSessionAuthUsecase(
		container.SessionCache,
		userRepository,
		tokenGateway,
		tokenGateway,
		logger,
	)
	container.SignIn = usecase.NewSignInUsecase(
		container.OAuthProvider,
		userRepository,
		container.SessionCache,
		logger,
	)

	logger.Info("container initialized",
		"session_cache_backend", cfg.SessionCacheBackend)

	return container, nil
}

func (c *Container) initSessionCache(cfg *config.Config, logger *slog.Logger) error {
	switch strings.ToLower(cfg.SessionCacheBackend) {
	case "redis":
		redisCache, err := redisdriver.NewSessionCache(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionCacheTTL, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize redis session cache: %w", err)
		}
		c.redisCache = redisCache
		c.SessionCache = redisCache
	case "memory":
		c.SessionCache = cache.NewSessionCache(cfg.SessionCacheTTL)
	default:
		return fmt.Errorf("unknown session cache backend: %s", cfg.SessionCacheBackend)
	}
	return nil
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	routerConfig := rest.RouterConfig{
		Logger:        c.Logger,
		SessionAuth:   c.SessionAuth,
		SignIn:        c.SignIn,
		HealthChecker: c.DB,
		CookieTTL:     c.Config.SessionCookieTTL,
		SecureCookies: strings.HasPrefix(c.Config.ServerURL, "https://"),
		EnableDebug:   c.Config.LogLevel == "debug",
	}

	return rest.NewRouter(routerConfig)
}

// Close closes all resources
func (c *Container) Close() error {
	if c.redisCache != nil {
		if err := c.redisCache.Close(); err != nil {
			c.Logger.Warn("failed to close redis session cache", "error", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	c.Logger.Info("container closed")
	return nil
}
