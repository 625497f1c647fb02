package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"shipdesk/internal/infrastructure/ratelimit"
	"shipdesk/internal/shared/config"
	"shipdesk/internal/shared/logger"
	"shipdesk/internal/shared/utils"
)

// WidgetRateLimit throttles unauthenticated widget submissions per
// client IP across minute, hour, and day windows.
func WidgetRateLimit(limiter ratelimit.RateLimiter, cfg *config.WidgetConfig, log logger.Interface) gin.HandlerFunc {
	limits := ratelimit.RateLimitConfig{
		RequestsPerMinute: cfg.RateLimitPerMinute,
		RequestsPerHour:   cfg.RateLimitPerHour,
		RequestsPerDay:    cfg.RateLimitPerDay,
	}

	return func(c *gin.Context) {
		key := fmt.Sprintf("widget:%s", c.ClientIP())

		allowed, err := limiter.Allow(key, limits)
		if err != nil {
			// Redis unavailable: let the request through rather than
			// taking the widget down with it.
			log.Warnw("rate limiter unavailable, allowing request",
				"client_ip", c.ClientIP(),
				"error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
