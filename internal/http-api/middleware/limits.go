package middleware

import (
	"math"
	"net/http"
	"strconv"

	"bookshelf/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// BodyLimit caps request bodies. Requests that announce a larger body are
// refused up front; the rest are cut off while reading.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		if c.Request.ContentLength > limit {
			if WantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
				return
			}
			c.String(http.StatusRequestEntityTooLarge, "Request body too large")
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// LoginRateLimit throttles login attempts per client IP. Only POSTs count,
// so rendering the form is never blocked.
func LoginRateLimit(limiter *ratelimit.KeyedRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" || limiter.Allow(ip) {
			c.Next()
			return
		}

		wait := int(math.Ceil(limiter.RetryAfter(ip).Seconds()))
		if wait < 1 {
			wait = 1
		}
		c.Header("Retry-After", strconv.Itoa(wait))
		if WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts"})
			return
		}
		c.String(http.StatusTooManyRequests, "Too many login attempts, try again later.")
		c.Abort()
	}
}
