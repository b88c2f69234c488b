package middleware

import (
	"net/http"
	"strings"

	"github.com/PulseWireMedia/pulsewire-go/internal/application/services"
	"github.com/gin-gonic/gin"
)

// SysOpAuthMiddleware guards the operator dashboard routes with a
// bearer token minted at sysop login.
func SysOpAuthMiddleware(sysopService *services.SysOpService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantCtx, ok := GetTenantContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "bearer token required"})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if !sysopService.ValidateToken(tenantCtx, token) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Next()
	}
}
