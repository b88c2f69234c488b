// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/PulseWireMedia/pulsewire-go/internal/application/services"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
	"github.com/PulseWireMedia/pulsewire-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// TrendingHandlers serves the trending and breaking views
type TrendingHandlers struct {
	trendingService *services.TrendingService
	logger          *logging.ChanneledLogger
}

// NewTrendingHandlers creates trending handlers with injected dependencies
func NewTrendingHandlers(trendingService *services.TrendingService, logger *logging.ChanneledLogger) *TrendingHandlers {
	return &TrendingHandlers{
		trendingService: trendingService,
		logger:          logger,
	}
}

// GetTrending handles GET /api/v1/trending
func (h *TrendingHandlers) GetTrending(c *gin.Context) {
	tenantCtx, ok := middleware.GetTenantContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	items, err := h.trendingService.GetTrending(c.Request.Context(), tenantCtx, queryLimit(c))
	if err != nil {
		h.logger.Ranking().Error("Trending request failed",
			"tenantId", tenantCtx.TenantID, "error", err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": "trending data unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// GetBreaking handles GET /api/v1/breaking
func (h *TrendingHandlers) GetBreaking(c *gin.Context) {
	tenantCtx, ok := middleware.GetTenantContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	items, err := h.trendingService.GetBreaking(c.Request.Context(), tenantCtx, queryLimit(c))
	if err != nil {
		h.logger.Ranking().Error("Breaking request failed",
			"tenantId", tenantCtx.TenantID, "error", err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": "breaking data unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// queryLimit parses the limit query param; zero means service default
func queryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
