package fakeapi

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/stripegate/internal/infrastructure/ratelimit"
	"github.com/orris-inc/stripegate/internal/shared/logger"
	"github.com/orris-inc/stripegate/sdk/stripe"
)

func recovery(log logger.Interface) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Errorw("panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", fmt.Sprint(recovered),
			"stack", string(debug.Stack()))

		writeError(c, &stripe.Error{
			Type:           stripe.ErrorTypeAPI,
			Message:        "An unknown error occurred",
			HTTPStatusCode: http.StatusInternalServerError,
		})
	})
}

func requestLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"user_agent", c.Request.UserAgent(),
			"body_size", c.Writer.Size(),
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			log.Errorw("HTTP request completed with server error", args...)
		case status >= 400:
			log.Warnw("HTTP request completed with client error", args...)
		default:
			log.Debugw("HTTP request completed successfully", args...)
		}
	}
}

// rateLimit budgets requests per API key. A failing limiter lets the
// request through.
func rateLimit(limiter ratelimit.RateLimiter, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, _, _ := c.Request.BasicAuth()

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if remaining, err := limiter.Remaining(c.Request.Context(), key); err == nil {
			c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		}

		if !allowed {
			writeError(c, &stripe.Error{
				Type:           stripe.ErrorTypeRateLimit,
				Message:        "Too many requests hit the API too quickly.",
				Code:           stripe.ErrorCodeRateLimit,
				HTTPStatusCode: http.StatusTooManyRequests,
			})
			return
		}
		c.Next()
	}
}
