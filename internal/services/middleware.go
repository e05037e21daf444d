package services

import (
	"strings"

	"github.com/gin-gonic/gin"

	"harborview/internal/config"
	"harborview/internal/util"
)

// Context keys set by AuthMiddleware for downstream handlers.
const (
	ctxAdminID  = "adminID"
	ctxUsername = "username"
)

// AuthMiddleware verifies the bearer token on every protected route. Any
// verification failure (missing, malformed, expired, bad signature) rejects
// the request before it reaches the handler.
func AuthMiddleware(cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondAuth(c, "Authorization required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondAuth(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(cfg, parts[1])
		if err != nil {
			respondAuth(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ctxAdminID, claims.AdminID)
		c.Set(ctxUsername, claims.Username)
		c.Next()
	}
}

// Username returns the authenticated admin's username from the context.
func Username(c *gin.Context) string {
	if v, ok := c.Get(ctxUsername); ok {
		return v.(string)
	}
	return ""
}
