package handlers

import (
	"net/http"

	"github.com/PulseWireMedia/pulsewire-go/internal/application/services"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
	"github.com/PulseWireMedia/pulsewire-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SysOpHandlers serves the operator dashboard endpoints
type SysOpHandlers struct {
	sysopService    *services.SysOpService
	trendingService *services.TrendingService
	logger          *logging.ChanneledLogger
}

// SysOpLoginRequest is the body for operator login
type SysOpLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// NewSysOpHandlers creates sysop handlers with injected dependencies
func NewSysOpHandlers(sysopService *services.SysOpService, trendingService *services.TrendingService, logger *logging.ChanneledLogger) *SysOpHandlers {
	return &SysOpHandlers{
		sysopService:    sysopService,
		trendingService: trendingService,
		logger:          logger,
	}
}

// Login handles POST /api/sysop/login
func (h *SysOpHandlers) Login(c *gin.Context) {
	tenantCtx, ok := middleware.GetTenantContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	var req SysOpLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	token, err := h.sysopService.Authenticate(tenantCtx, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GetStatus handles GET /api/sysop/status
func (h *SysOpHandlers) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.sysopService.GetStatus())
}

// RefreshTrending handles POST /api/sysop/trending/refresh, forcing a
// scoring pass outside the TTL cadence.
func (h *SysOpHandlers) RefreshTrending(c *gin.Context) {
	tenantCtx, ok := middleware.GetTenantContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	scored, err := h.trendingService.RefreshTrending(c.Request.Context(), tenantCtx)
	if err != nil {
		h.logger.Ranking().Error("Forced trending refresh failed",
			"tenantId", tenantCtx.TenantID, "error", err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": "refresh failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"refreshed": true, "items": len(scored)})
}
