package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Headers set by the upstream gateway once it has authenticated the caller.
const (
	TenantHeader = "X-Tenant-ID"
	UserHeader   = "X-User-ID"
)

// TenantContext scopes the request to the tenant and user named by the gateway headers.
// Requests without a tenant are rejected.
func TenantContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := strings.TrimSpace(c.GetHeader(TenantHeader))
		userID := strings.TrimSpace(c.GetHeader(UserHeader))
		if tenantID == "" {
			GetLoggerFromCtx(c.Request.Context()).Warn("Tenant header missing")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": TenantHeader + " header required"})
			return
		}
		if userID == "" {
			userID = "anonymous"
		}

		logger := GetLoggerFromCtx(c.Request.Context()).With(
			slog.String("tenant_id", tenantID),
			slog.String("user_id", userID),
		)
		c.Set(string(tenantIDKey), tenantID)
		c.Set(string(userIDKey), userID)
		c.Set(string(loggerKey), logger)
		ctx := WithTenant(c.Request.Context(), tenantID, userID)
		c.Request = c.Request.WithContext(WithLogger(ctx, logger))

		c.Next()
	}
}
