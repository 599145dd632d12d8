package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	apperrors "session-hub/app/utils/errors"
)

// RateLimiter limits requests per client IP. The sign-in and callback
// routes get tighter limits than page traffic since they trigger
// outbound provider calls.
type RateLimiter struct {
	visitors map[string]*visitor
	mutex    sync.Mutex
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
	}

	go rl.cleanupVisitors()
	return rl
}

func (rl *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			var limit rate.Limit
			var burst int

			path := c.Request().URL.Path
			switch {
			case strings.HasPrefix(path, "/sign-in"), strings.HasPrefix(path, "/callback"):
				limit = rate.Every(time.Second)
				burst = 5
			default:
				limit = rate.Every(100 * time.Millisecond)
				burst = 30
			}

			if !rl.allow(ip, path, limit, burst) {
				appErr := apperrors.New(apperrors.ErrCodeRateLimitExceeded, "rate limit exceeded", http.StatusTooManyRequests)
				return c.JSON(appErr.StatusCode, appErr)
			}

			return next(c)
		}
	}
}

func (rl *RateLimiter) allow(ip, path string, limit rate.Limit, burst int) bool {
	// Keyed per IP and route class so page traffic cannot consume the
	// sign-in budget.
	key := ip
	if strings.HasPrefix(path, "/sign-in") || strings.HasPrefix(path, "/callback") {
		key = ip + ":auth"
	}

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	v, exists := rl.visitors[key]
	if !exists {
		rl.visitors[key] = &visitor{
			limiter:  rate.NewLimiter(limit, burst),
			lastSeen: time.Now(),
		}
		return true
	}

	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		rl.mutex.Lock()
		for key, v := range rl.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(rl.visitors, key)
			}
		}
		rl.mutex.Unlock()
	}
}
