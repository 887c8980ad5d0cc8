// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"errors"
	"strings"

	apperrors "moviestream/internal/errors"
	"moviestream/internal/logging"
	"moviestream/pkg/auth"
	"moviestream/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// UserIDKey is the gin context key holding the authenticated user's id.
const UserIDKey = "userID"

// Auth returns a middleware that validates JWT tokens.
func Auth(tokens auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, tokenError(err).Error())
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)

		ctx := c.Request.Context()
		entry := logging.FromContext(ctx).WithField("user_id", claims.UserID)
		c.Request = c.Request.WithContext(logging.NewContext(ctx, entry))

		c.Next()
	}
}

// GetUserID retrieves the user ID from the context.
// Returns empty string if not found.
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// tokenError tells an expired token apart from any other rejected one.
func tokenError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return apperrors.ErrTokenExpired
	}
	return apperrors.ErrInvalidToken
}
