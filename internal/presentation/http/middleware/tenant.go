// Package middleware provides HTTP middleware for the presentation layer.
package middleware

import (
	"fmt"
	"net/http"

	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/performance"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/tenant"
	"github.com/gin-gonic/gin"
)

// TenantMiddleware resolves the request's tenant and attaches the full
// tenant context for handlers downstream.
func TenantMiddleware(tenantManager *tenant.Manager, perfTracker *performance.Tracker) gin.HandlerFunc {
	logger := tenantManager.GetLogger()

	return func(c *gin.Context) {
		marker := perfTracker.StartOperation("middleware_tenant_resolution", "unknown")
		defer marker.Complete()

		tenantID := c.GetHeader("X-Tenant-ID")
		if tenantID == "" {
			tenantID = c.Query("tenantId") // fallback for websocket clients
		}
		marker.AddMetadata("path", c.Request.URL.Path)
		if tenantID != "" {
			marker.TenantID = tenantID
		}

		tenantCtx, err := tenantManager.GetContext(c)
		if err != nil {
			errMsg := fmt.Sprintf("tenant '%s' not found or failed to initialize", tenantID)
			logger.Tenant().Error(errMsg, "error", err, "tenantId", tenantID)
			marker.SetSuccess(false)
			marker.SetError(err)
			c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
			c.Abort()
			return
		}

		marker.SetSuccess(true)
		c.Set("tenant", tenantCtx)
		c.Next()
	}
}

// GetTenantContext retrieves the tenant context placed by TenantMiddleware
func GetTenantContext(c *gin.Context) (*tenant.Context, bool) {
	value, exists := c.Get("tenant")
	if !exists {
		return nil, false
	}
	ctx, ok := value.(*tenant.Context)
	return ctx, ok
}
