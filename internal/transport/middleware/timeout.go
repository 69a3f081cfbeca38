package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

const defaultRequestTimeout = 30 * time.Second

// Timeout caps every request at the configured duration by replacing
// the request context with a deadline-bound one. A non-positive
// duration falls back to the default.
func Timeout(d time.Duration) gin.HandlerFunc {
	if d <= 0 {
		d = defaultRequestTimeout
	}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
