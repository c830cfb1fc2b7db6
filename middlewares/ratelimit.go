package middlewares

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/Deinys/SmartHome-Backend/ratelimit"
	"github.com/gin-gonic/gin"
)

// RateLimit allows at most limit requests per client IP and window for the
// routes it guards. scope keeps counters of different route groups apart.
func RateLimit(limiter ratelimit.Limiter, scope string, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := limiter.Allow(c.Request.Context(), scope+":"+c.ClientIP(), limit)
		c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		if !d.Allowed {
			retry := int(math.Ceil(time.Until(d.ResetAt).Seconds()))
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
