package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"hhdeals/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const rateLimitTimeout = 2 * time.Second

// Counter is the part of storage.Cache the limiter needs.
type Counter interface {
	IncrementWithExpiry(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RateLimit allows limit requests per client per minute. A limit of zero
// disables it. Counter failures let the request through.
func RateLimit(counter Counter, limit int, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil || limit <= 0 {
			c.Next()
			return
		}

		clientID := GetClientID(c)
		if clientID == "" {
			clientID = c.ClientIP()
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), rateLimitTimeout)
		defer cancel()

		count, err := counter.IncrementWithExpiry(ctx, storage.RateLimitKey(clientID, time.Now()), storage.RateLimitWindow)
		if err != nil {
			logger.Error("failed to check rate limit",
				zap.String("client_id", clientID),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if count > int64(limit) {
			logger.Warn("rate limit exceeded",
				zap.String("client_id", clientID),
				zap.Int64("count", count),
			)

			c.Header("Retry-After", strconv.Itoa(int(storage.RateLimitWindow.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
