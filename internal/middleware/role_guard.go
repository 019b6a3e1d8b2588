package middleware

import (
	"net/http"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// RequireWriteRole aborts requests whose role claim cannot mutate data.
func RequireWriteRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRoleFromContext(c)
		if !ok || !domain.UserRole(role).CanWrite() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Write access required"})
			return
		}
		c.Next()
	}
}

// RequireAdminRole aborts requests without the admin role claim.
func RequireAdminRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRoleFromContext(c)
		if !ok || domain.UserRole(role) != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
