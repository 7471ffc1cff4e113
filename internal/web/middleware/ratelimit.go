package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RateCounter interface {
	IncrementRateLimit(ctx context.Context, client string) (int64, error)
}

// RateLimit allows maxPerMinute requests per client IP. Counter failures let the request through.
func RateLimit(counter RateCounter, maxPerMinute int, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		client := c.ClientIP()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		count, err := counter.IncrementRateLimit(ctx, client)
		if err != nil {
			logger.Error("failed to check rate limit",
				zap.String("client_ip", client),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if count > int64(maxPerMinute) {
			logger.Warn("rate limit exceeded",
				zap.String("client_ip", client),
				zap.Int64("count", count),
			)

			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("Too many requests. Maximum: %d requests per minute.", maxPerMinute),
			})
			return
		}

		c.Next()
	}
}
