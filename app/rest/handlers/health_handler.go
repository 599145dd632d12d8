package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// DependencyChecker reports whether a backing dependency is reachable.
type DependencyChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	db     DependencyChecker
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db DependencyChecker, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

// HealthCheck performs a basic health check
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Service:   "session-hub",
		Uptime:    time.Since(startTime).String(),
	})
}

// ReadinessCheck verifies the backing store is reachable.
func (h *HealthHandler) ReadinessCheck(c echo.Context) error {
	checks := make(map[string]HealthStatus)
	allHealthy := true

	start := time.Now()
	if err := h.db.HealthCheck(c.Request().Context()); err != nil {
		h.logger.Error("database readiness check failed", "error", err)
		checks["database"] = HealthStatus{Status: "unhealthy", Message: err.Error()}
		allHealthy = false
	} else {
		checks["database"] = HealthStatus{
			Status:  "healthy",
			Message: "connected",
			Latency: time.Since(start).String(),
		}
	}

	statusCode := http.StatusOK
	status := "ready"
	if !allHealthy {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	return c.JSON(statusCode, ReadinessResponse{
		Status:    status,
		Timestamp: time.Now(),
		Service:   "session-hub",
		Checks:    checks,
	})
}

// LivenessCheck performs a liveness check
func (h *HealthHandler) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Service:   "session-hub",
		Uptime:    time.Since(startTime).String(),
	})
}

// Response types
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Uptime    string    `json:"uptime"`
}

type ReadinessResponse struct {
	Status    string                  `json:"status"`
	Timestamp time.Time               `json:"timestamp"`
	Service   string                  `json:"service"`
	Checks    map[string]HealthStatus `json:"checks"`
}

type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Latency string `json:"latency,omitempty"`
}

// startTime is set when the service starts
var startTime = time.Now()
