// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/PulseWireMedia/pulsewire-go/internal/application/services"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/caching/manager"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/content"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/messaging"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/performance"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/tenant"
	"github.com/PulseWireMedia/pulsewire-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services (singletons)
	PreferenceService      *services.PreferenceService
	SectionService         *services.SectionService
	TrendingService        *services.TrendingService
	PersonalizationService *services.PersonalizationService
	EventProcessingService *services.EventProcessingService
	SysOpService           *services.SysOpService

	// Infrastructure dependencies
	TenantManager    *tenant.Manager
	CacheManager     *manager.Manager
	ContentSource    content.Source
	TrendBroadcaster *messaging.TrendBroadcaster
	Logger           *logging.ChanneledLogger
	PerfTracker      *performance.Tracker
}

// NewContainer creates and wires all singleton services
func NewContainer(tenantManager *tenant.Manager, cacheManager *manager.Manager, logger *logging.ChanneledLogger) *Container {
	perfTracker := performance.NewTracker(performance.DefaultTrackerConfig())
	contentSource := content.NewHTTPSource(config.ContentSourceURL, config.ContentFetchTimeout, logger)
	broadcaster := messaging.NewTrendBroadcaster(logger)

	preferenceSvc := services.NewPreferenceService(cacheManager, logger, perfTracker)
	sectionSvc := services.NewSectionService(logger)
	trendingSvc := services.NewTrendingService(contentSource, cacheManager, broadcaster, logger, perfTracker)
	personalizationSvc := services.NewPersonalizationService(contentSource, preferenceSvc, sectionSvc, logger, perfTracker)
	eventSvc := services.NewEventProcessingService(preferenceSvc, logger)
	sysopSvc := services.NewSysOpService(cacheManager, tenantManager, logger, perfTracker)

	return &Container{
		PreferenceService:      preferenceSvc,
		SectionService:         sectionSvc,
		TrendingService:        trendingSvc,
		PersonalizationService: personalizationSvc,
		EventProcessingService: eventSvc,
		SysOpService:           sysopSvc,

		TenantManager:    tenantManager,
		CacheManager:     cacheManager,
		ContentSource:    contentSource,
		TrendBroadcaster: broadcaster,
		Logger:           logger,
		PerfTracker:      perfTracker,
	}
}
