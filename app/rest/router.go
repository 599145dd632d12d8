package rest

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"session-hub/app/port"
	"session-hub/app/rest/handlers"
	custommw "session-hub/app/rest/middleware"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger        *slog.Logger
	SessionAuth   port.SessionAuthenticator
	SignIn        port.SignInUsecase
	HealthChecker handlers.DependencyChecker
	CookieTTL     time.Duration
	SecureCookies bool
	EnableDebug   bool
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.Debug = config.EnableDebug
	e.HTTPErrorHandler = NewHTTPErrorHandler(config.Logger)

	authHandler := handlers.NewAuthHandler(config.SignIn, config.CookieTTL, config.SecureCookies, config.Logger)
	pageHandler := handlers.NewPageHandler(config.Logger)
	healthHandler := handlers.NewHealthHandler(config.HealthChecker, config.Logger)

	authMiddleware := custommw.NewAuthMiddleware(config.SessionAuth, config.Logger)
	rateLimiter := custommw.NewRateLimiter()

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(custommw.DefaultCORS())
	e.Use(custommw.SecurityHeaders())
	e.Use(rateLimiter.RateLimit())

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}, latency=${latency_human}, error=${error}\n",
	}))

	// Health endpoints (no auth required)
	health := e.Group("/health")
	health.GET("", healthHandler.HealthCheck)
	health.GET("/ready", healthHandler.ReadinessCheck)
	health.GET("/live", healthHandler.LivenessCheck)

	// Public pages and the OAuth flow
	e.GET("/", pageHandler.Index)
	e.GET("/sign-in", authHandler.SignIn)
	e.GET("/callback/auth", authHandler.Callback)
	e.GET("/sign-out", authHandler.SignOut)

	// Protected pages
	protected := e.Group("")
	protected.Use(authMiddleware.RequireSession())
	protected.GET("/home", pageHandler.Home)

	return e
}
