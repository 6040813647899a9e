package middleware

import (
	"net/http"
	"strings"

	"storefront-service/common/auth"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "user_id"
	roleKey   = "role"

	// RoleAdmin is the role claim that unlocks catalog mutations.
	RoleAdmin = "admin"
)

// TokenParser verifies a raw session token.
type TokenParser interface {
	ParseAndValidateToken(token string) (*auth.Claims, error)
}

// RequireSignIn rejects requests without a valid session token in the Authorization header.
// Both "Bearer <token>" and the bare token are accepted.
func RequireSignIn(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			unauthorized(c, "Authorization token required")
			return
		}

		claims, err := parser.ParseAndValidateToken(token)
		if err != nil {
			_ = c.Error(err)
			unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(roleKey, claims.Role)
		c.Next()
	}
}

// IsAdmin must run after RequireSignIn.
func IsAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(roleKey) != RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Admin access required",
			})
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user id set by RequireSignIn.
func GetUserID(c *gin.Context) (string, bool) {
	id := c.GetString(userIDKey)
	return id, id != ""
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
}
