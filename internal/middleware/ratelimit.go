package middleware

import (
	"math"
	"strconv"

	apperrors "moviestream/internal/errors"
	"moviestream/internal/logging"
	"moviestream/internal/ratelimit"
	"moviestream/pkg/response"

	"github.com/gin-gonic/gin"
)

// RateLimit limits requests per client IP within scope. A nil limiter
// disables limiting. Counter failures let the request through.
func RateLimit(limiter *ratelimit.Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		res, err := limiter.Allow(c.Request.Context(), scope, c.ClientIP())
		if err != nil {
			logging.FromContext(c.Request.Context()).WithError(err).WithField("scope", scope).
				Warn("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

		if !res.Allowed {
			seconds := int(math.Ceil(res.RetryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			response.TooManyRequests(c, apperrors.ErrTooManyRequests.Error())
			c.Abort()
			return
		}

		c.Next()
	}
}
