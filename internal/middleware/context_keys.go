package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context keys to prevent collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	tenantIDKey  = contextKey("tenantID")
	userRoleKey  = contextKey("userRole")
)

// GetUserIDFromContext retrieves the authenticated user ID from the request.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return stringFromCtx(c.Request.Context(), userIDKey)
}

// GetTenantIDFromContext retrieves the resolved tenant ID from the request.
// The core never reads tenant identity ambiently: handlers fetch it here and
// pass it to services as an explicit parameter.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	return stringFromCtx(c.Request.Context(), tenantIDKey)
}

// GetUserRoleFromContext retrieves the authenticated user's role claim.
func GetUserRoleFromContext(c *gin.Context) (string, bool) {
	return stringFromCtx(c.Request.Context(), userRoleKey)
}

func stringFromCtx(ctx context.Context, key contextKey) (string, bool) {
	v := ctx.Value(key)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
