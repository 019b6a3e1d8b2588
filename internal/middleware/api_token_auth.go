package middleware

import (
	"context"
	"log/slog"
	"strings"

	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

const apiTokenPrefix = "cxb_"

// APITokenAuthMiddleware resolves automation callers presenting an API token.
// Tokens use the X-API-Token header or a prefixed bearer value; on a match
// the request is authenticated and the JWT middleware is skipped.
func APITokenAuthMiddleware(tokenSvc portssvc.APITokenSvcFacade, userSvc portssvc.UserSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		plain := c.GetHeader("X-API-Token")
		if plain == "" {
			authHeader := c.GetHeader("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" && strings.HasPrefix(parts[1], apiTokenPrefix) {
				plain = parts[1]
			}
		}
		if plain == "" {
			c.Next() // Not an API-token request; JWT middleware takes over.
			return
		}

		token, err := tokenSvc.ValidateToken(c.Request.Context(), plain)
		if err != nil {
			logger.Warn("API token validation failed", "error", err)
			c.Next()
			return
		}

		user, err := userSvc.GetUserByID(c.Request.Context(), token.UserID)
		if err != nil || !user.IsActive {
			logger.Warn("API token owner unavailable", "user_id", token.UserID)
			c.Next()
			return
		}

		ctx := context.WithValue(c.Request.Context(), userIDKey, user.UserID)
		ctx = context.WithValue(ctx, tenantIDKey, user.TenantID)
		ctx = context.WithValue(ctx, userRoleKey, string(user.Role))
		ctx = context.WithValue(ctx, loggerCtxKey, logger.With(
			slog.String("user_id", user.UserID),
			slog.String("auth_method", "api_token"),
		))

		c.Request = c.Request.WithContext(ctx)
		c.Set("authMethod", "api_token")
		c.Next()
	}
}
