package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barbershop/internal/pkg/response"
)

// RequireRole allows the request through only when the token carries one
// of the listed roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role := c.GetString("user_role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "unauthorized", "Role not found in token")
			c.Abort()
			return
		}

		if !allowed[role] {
			response.Error(c, http.StatusForbidden, "forbidden", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly restricts the group to admins.
func AdminOnly() gin.HandlerFunc {
	return RequireRole("admin")
}

// StaffOnly admits barbers and admins.
func StaffOnly() gin.HandlerFunc {
	return RequireRole("barber", "admin")
}
