package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/api-marketplace/internal/dto"
	"github.com/prperemyshlev/api-marketplace/internal/service"
	"go.uber.org/zap"
)

// RateLimitMiddleware rejects callers that exceed limit requests per window
func RateLimitMiddleware(limiter service.RateLimiter, limit int, window time.Duration, keyFunc func(*gin.Context) string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFunc(c)

		decision, err := limiter.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			// fail open when Redis is unavailable
			logger.Warn("rate limiter unavailable", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(decision.RetryAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.Response{
				Success: false,
				Error:   "Rate limit exceeded, try again in " + decision.RetryAfter.String(),
			})
			return
		}

		c.Next()
	}
}

// IPBasedKey extracts rate limit key from client IP
func IPBasedKey(c *gin.Context) string {
	// X-Forwarded-For can contain multiple IPs, take the first one
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		ip, _, _ := strings.Cut(forwarded, ",")
		return "ip:" + strings.TrimSpace(ip)
	}
	return "ip:" + c.ClientIP()
}
