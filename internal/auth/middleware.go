package auth

import (
	"strings"

	"codeberg.org/interprep/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// validates JWT tokens and adds user info to context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			errors.Unauthorized(c, "authorization header required")
			c.Abort()
			return
		}

		claims, err := ValidateJWT(token)
		if err != nil {
			errors.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// validates JWT if present but doesn't require it
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if claims, err := ValidateJWT(token); err == nil {
				setClaims(c, claims)
			}
		}

		c.Next()
	}
}

// extracts user_id from context after AuthMiddleware
func GetUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get(contextUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(int64)

	return id, ok
}

func setClaims(c *gin.Context, claims *Claims) {
	c.Set(contextUserID, claims.UserID)
	c.Set(contextEmail, claims.Email)
	c.Set(contextUsername, claims.Username)
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
