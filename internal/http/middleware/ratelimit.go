package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/singhankit6748/Water-Tracker/internal/rate"
)

// RateLimit enforces a per-IP token bucket for the current route.
// A nil limiter lets every request through.
func RateLimit(lim *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if lim == nil {
			c.Next()
			return
		}
		if !lim.Allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limited"})
			return
		}
		c.Next()
	}
}
