package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/shared/utils"
)

// Allower is the rate limiter backing the middleware.
type Allower interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
}

// RateLimit rejects requests beyond limit per window, keyed by client IP
// and route.
func RateLimit(limiter Allower, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", c.ClientIP(), c.FullPath())
		if !limiter.Allow(c.Request.Context(), key, limit, window) {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
