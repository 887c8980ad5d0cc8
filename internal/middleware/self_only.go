package middleware

import (
	apperrors "moviestream/internal/errors"
	"moviestream/pkg/response"

	"github.com/gin-gonic/gin"
)

// SelfOnly returns a middleware that lets a user act only on their own
// account. param names the path parameter holding the target user id.
// It must run after Auth.
func SelfOnly(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == "" {
			response.Unauthorized(c, "user not authenticated")
			c.Abort()
			return
		}

		if c.Param(param) != userID {
			response.Forbidden(c, apperrors.ErrNotAccountOwner.Error())
			c.Abort()
			return
		}

		c.Next()
	}
}
