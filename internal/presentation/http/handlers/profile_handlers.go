package handlers

import (
	"net/http"

	"github.com/PulseWireMedia/pulsewire-go/internal/application/services"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
	"github.com/PulseWireMedia/pulsewire-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// ProfileHandlers serves preference profile reads, consent updates, and resets
type ProfileHandlers struct {
	preferenceService *services.PreferenceService
	logger            *logging.ChanneledLogger
}

// ConsentRequest is the body for consent updates
type ConsentRequest struct {
	Consent *bool `json:"consent" binding:"required"`
}

// NewProfileHandlers creates profile handlers with injected dependencies
func NewProfileHandlers(preferenceService *services.PreferenceService, logger *logging.ChanneledLogger) *ProfileHandlers {
	return &ProfileHandlers{
		preferenceService: preferenceService,
		logger:            logger,
	}
}

// GetProfile handles GET /api/v1/profile
func (h *ProfileHandlers) GetProfile(c *gin.Context) {
	tenantCtx, ok := middleware.GetTenantContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}
	deviceID := middleware.GetDeviceID(c)

	state := h.preferenceService.GetProfile(tenantCtx, deviceID)
	consent := h.preferenceService.HasConsent(tenantCtx, deviceID)

	c.JSON(http.StatusOK, gin.H{"profile": state, "consent": consent})
}

// SetConsent handles POST /api/v1/profile/consent
func (h *ProfileHandlers) SetConsent(c *gin.Context) {
	tenantCtx, ok := middleware.GetTenantContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}
	deviceID := middleware.GetDeviceID(c)

	var req ConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "consent field is required"})
		return
	}

	if err := h.preferenceService.SetConsent(tenantCtx, deviceID, *req.Consent); err != nil {
		h.logger.Profile().Error("Consent update failed",
			"tenantId", tenantCtx.TenantID, "deviceId", deviceID, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update consent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"consent": *req.Consent})
}

// ResetProfile handles DELETE /api/v1/profile
func (h *ProfileHandlers) ResetProfile(c *gin.Context) {
	tenantCtx, ok := middleware.GetTenantContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}
	deviceID := middleware.GetDeviceID(c)

	if err := h.preferenceService.Reset(tenantCtx, deviceID); err != nil {
		h.logger.Profile().Error("Profile reset failed",
			"tenantId", tenantCtx.TenantID, "deviceId", deviceID, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reset": true})
}
