package handlers

import (
	"net/http"

	"github.com/PulseWireMedia/pulsewire-go/internal/application/services"
	domainEvents "github.com/PulseWireMedia/pulsewire-go/internal/domain/events"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
	"github.com/PulseWireMedia/pulsewire-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// EventHandlers ingests batched engagement events from the reading surfaces
type EventHandlers struct {
	eventService *services.EventProcessingService
	logger       *logging.ChanneledLogger
}

// EventBatchRequest is the body for event ingestion
type EventBatchRequest struct {
	Events []domainEvents.Event `json:"events" binding:"required"`
}

// NewEventHandlers creates event handlers with injected dependencies
func NewEventHandlers(eventService *services.EventProcessingService, logger *logging.ChanneledLogger) *EventHandlers {
	return &EventHandlers{
		eventService: eventService,
		logger:       logger,
	}
}

// PostEvents handles POST /api/v1/events
func (h *EventHandlers) PostEvents(c *gin.Context) {
	tenantCtx, ok := middleware.GetTenantContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}
	deviceID := middleware.GetDeviceID(c)

	var req EventBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "events array is required"})
		return
	}
	if len(req.Events) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "events array is empty"})
		return
	}

	state, processed := h.eventService.ProcessEvents(tenantCtx, deviceID, req.Events)

	c.JSON(http.StatusOK, gin.H{
		"processed": processed,
		"received":  len(req.Events),
		"profile":   state,
	})
}
