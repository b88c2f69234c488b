package handlers

import (
	"net/http"

	"github.com/PulseWireMedia/pulsewire-go/internal/application/services"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
	"github.com/PulseWireMedia/pulsewire-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// FeedHandlers serves the resolved content payload for a device
type FeedHandlers struct {
	personalizationService *services.PersonalizationService
	logger                 *logging.ChanneledLogger
}

// NewFeedHandlers creates feed handlers with injected dependencies
func NewFeedHandlers(personalizationService *services.PersonalizationService, logger *logging.ChanneledLogger) *FeedHandlers {
	return &FeedHandlers{
		personalizationService: personalizationService,
		logger:                 logger,
	}
}

// GetFeed handles GET /api/v1/feed
func (h *FeedHandlers) GetFeed(c *gin.Context) {
	tenantCtx, ok := middleware.GetTenantContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}
	deviceID := middleware.GetDeviceID(c)

	resolved, err := h.personalizationService.ResolveContent(c.Request.Context(), tenantCtx, deviceID)
	if err != nil {
		h.logger.Personalization().Error("Feed resolution failed",
			"tenantId", tenantCtx.TenantID, "deviceId", deviceID, "error", err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": "content unavailable"})
		return
	}

	c.JSON(http.StatusOK, resolved)
}
