package handlers

import (
	"net/http"

	"github.com/PulseWireMedia/pulsewire-go/internal/application/services"
	entities "github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/content"
	infracontent "github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/content"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
	"github.com/PulseWireMedia/pulsewire-go/internal/presentation/http/middleware"
	"github.com/PulseWireMedia/pulsewire-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// SectionHandlers serves the prioritized category sections for a device
type SectionHandlers struct {
	source            infracontent.Source
	sectionService    *services.SectionService
	preferenceService *services.PreferenceService
	logger            *logging.ChanneledLogger
}

// NewSectionHandlers creates section handlers with injected dependencies
func NewSectionHandlers(
	source infracontent.Source,
	sectionService *services.SectionService,
	preferenceService *services.PreferenceService,
	logger *logging.ChanneledLogger,
) *SectionHandlers {
	return &SectionHandlers{
		source:            source,
		sectionService:    sectionService,
		preferenceService: preferenceService,
		logger:            logger,
	}
}

// GetSections handles GET /api/v1/sections
func (h *SectionHandlers) GetSections(c *gin.Context) {
	tenantCtx, ok := middleware.GetTenantContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}
	deviceID := middleware.GetDeviceID(c)

	items, err := h.source.FetchItems(c.Request.Context(), entities.Query{Page: 1, Limit: config.ContentPageSize})
	if err != nil {
		h.logger.Content().Error("Section fetch failed",
			"tenantId", tenantCtx.TenantID, "error", err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": "content unavailable"})
		return
	}

	state := h.preferenceService.GetProfile(tenantCtx, deviceID)
	sections := h.sectionService.Prioritize(h.sectionService.BuildSections(items), state)

	c.JSON(http.StatusOK, gin.H{"sections": sections, "count": len(sections)})
}
