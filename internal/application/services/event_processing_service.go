package services

import (
	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/profile"
	domainEvents "github.com/PulseWireMedia/pulsewire-go/internal/domain/events"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/tenant"
)

// EventProcessingService feeds batched engagement events into the
// preference profile of their device.
type EventProcessingService struct {
	preferenceSvc *PreferenceService
	logger        *logging.ChanneledLogger
}

// NewEventProcessingService creates a new event processing service with its dependencies.
func NewEventProcessingService(preferenceSvc *PreferenceService, logger *logging.ChanneledLogger) *EventProcessingService {
	return &EventProcessingService{
		preferenceSvc: preferenceSvc,
		logger:        logger,
	}
}

// ProcessEvents applies a batch of events for one device and returns
// the resulting profile. Malformed events are skipped, not fatal; the
// batch's last profile state wins.
func (s *EventProcessingService) ProcessEvents(tenantCtx *tenant.Context, deviceID string, events []domainEvents.Event) (*profile.State, int) {
	state := s.preferenceSvc.GetProfile(tenantCtx, deviceID)
	processed := 0

	for _, event := range events {
		if !event.IsValid() {
			s.logger.Profile().Warn("Skipping malformed event",
				"tenantId", tenantCtx.TenantID, "deviceId", deviceID, "type", event.Type)
			continue
		}

		var err error
		switch event.Type {
		case domainEvents.TypeVisit:
			state, err = s.preferenceSvc.RecordVisit(tenantCtx, deviceID, event.CategorySlug)
		case domainEvents.TypeRead:
			state, err = s.preferenceSvc.RecordRead(tenantCtx, deviceID, event.CategorySlug, event.ArticleSlug)
		}
		if err != nil {
			s.logger.Profile().Error("Event processing failed",
				"tenantId", tenantCtx.TenantID, "deviceId", deviceID,
				"type", event.Type, "error", err.Error())
			continue
		}
		processed++
	}

	return state, processed
}
