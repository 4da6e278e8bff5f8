package middleware

import (
	"net/http"
	"strings"

	"vidtok/internal/core/ports"
	"vidtok/internal/core/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a valid bearer session token and attaches the
// authenticated user to the request context.
func AuthMiddleware(authService ports.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		user, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(services.ContextWithUser(c.Request.Context(), user))
		c.Set("user_id", string(user.ID))
		c.Set("username", user.Username)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the user when a valid token is present
// but lets anonymous requests through.
func OptionalAuthMiddleware(authService ports.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if user, err := authService.ValidateToken(parts[1]); err == nil {
				c.Request = c.Request.WithContext(services.ContextWithUser(c.Request.Context(), user))
				c.Set("user_id", string(user.ID))
				c.Set("username", user.Username)
			}
		}

		c.Next()
	}
}
