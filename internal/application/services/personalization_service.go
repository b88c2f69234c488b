package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	entities "github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/content"
	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/profile"
	infracontent "github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/content"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/performance"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/tenant"
	"github.com/PulseWireMedia/pulsewire-go/pkg/config"
	gocache "github.com/patrickmn/go-cache"
)

// PersonalizationService resolves the content payload for one device:
// a personalized fetch when consent and preference signal exist, a
// generic fetch otherwise, and the last good payload when the upstream
// is down. Each resolve runs as a numbered cycle per device; a cycle
// superseded while in flight never overwrites a newer result.
type PersonalizationService struct {
	source        infracontent.Source
	preferenceSvc *PreferenceService
	sectionSvc    *SectionService
	resolved      *gocache.Cache
	cycles        sync.Map
	logger        *logging.ChanneledLogger
	perfTracker   *performance.Tracker
}

// NewPersonalizationService creates a new personalization service with injected dependencies
func NewPersonalizationService(
	source infracontent.Source,
	preferenceSvc *PreferenceService,
	sectionSvc *SectionService,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *PersonalizationService {
	return &PersonalizationService{
		source:        source,
		preferenceSvc: preferenceSvc,
		sectionSvc:    sectionSvc,
		resolved:      gocache.New(config.ResolvedContentTTL, 2*config.ResolvedContentTTL),
		logger:        logger,
		perfTracker:   perfTracker,
	}
}

// BuildRequest derives the content query for a device. Personalized
// queries require consent and at least one top category; everything
// else gets the generic query.
func (s *PersonalizationService) BuildRequest(state *profile.State, consent bool) entities.Query {
	if consent && len(state.TopCategories) > 0 {
		return entities.Query{
			PreferredCategories: state.TopCategories,
			CategoryVisits:      state.VisitCounts(),
			Page:                1,
			Limit:               config.PersonalizedPageSize,
		}
	}
	return entities.Query{Page: 1, Limit: config.ContentPageSize}
}

// ResolveContent produces the content payload for a device.
//
// Personalized fetch failure falls back to the generic fetch; generic
// failure falls back to the cached payload marked stale; with nothing
// cached the error surfaces. No automatic retries.
func (s *PersonalizationService) ResolveContent(ctx context.Context, tenantCtx *tenant.Context, deviceID string) (*entities.Resolved, error) {
	marker := s.perfTracker.StartOperation("resolve_content", tenantCtx.TenantID)
	defer marker.Complete()

	key := resolvedKey(tenantCtx.TenantID, deviceID)
	cycle := s.nextCycle(key)

	consent := s.preferenceSvc.HasConsent(tenantCtx, deviceID)
	state := s.preferenceSvc.GetProfile(tenantCtx, deviceID)
	query := s.BuildRequest(state, consent)

	fetchCtx, cancel := context.WithTimeout(ctx, config.ContentFetchTimeout)
	defer cancel()

	source := entities.SourceGeneric
	items, err := s.source.FetchItems(fetchCtx, query)
	if err == nil && query.IsPersonalized() {
		source = entities.SourcePersonalized
	}

	if err != nil && query.IsPersonalized() {
		s.logger.Personalization().Warn("Personalized fetch failed, falling back to generic",
			"tenantId", tenantCtx.TenantID, "deviceId", deviceID, "error", err.Error())
		items, err = s.source.FetchItems(fetchCtx, entities.Query{Page: 1, Limit: config.ContentPageSize})
	}

	if err != nil {
		if cached, found := s.resolved.Get(key); found {
			stale := *cached.(*entities.Resolved)
			stale.Source = entities.SourceStale
			s.logger.Personalization().Warn("Generic fetch failed, serving stale payload",
				"tenantId", tenantCtx.TenantID, "deviceId", deviceID, "error", err.Error())
			marker.SetSuccess(true)
			return &stale, nil
		}
		marker.SetError(err)
		return nil, fmt.Errorf("content resolution failed for device %s: %w", deviceID, err)
	}

	sections := s.sectionSvc.Prioritize(s.sectionSvc.BuildSections(items), state)
	result := &entities.Resolved{
		Source:     source,
		Items:      items,
		Sections:   sections,
		ResolvedAt: time.Now().UTC(),
	}

	// Only the newest cycle for this device may write the cache.
	if s.currentCycle(key) == cycle {
		s.resolved.Set(key, result, gocache.DefaultExpiration)
	} else {
		s.logger.Personalization().Debug("Resolve cycle superseded, discarding cache write",
			"tenantId", tenantCtx.TenantID, "deviceId", deviceID, "cycle", cycle)
	}

	marker.SetSuccess(true)
	return result, nil
}

func (s *PersonalizationService) nextCycle(key string) uint64 {
	counter, _ := s.cycles.LoadOrStore(key, new(uint64))
	return atomic.AddUint64(counter.(*uint64), 1)
}

func (s *PersonalizationService) currentCycle(key string) uint64 {
	counter, _ := s.cycles.LoadOrStore(key, new(uint64))
	return atomic.LoadUint64(counter.(*uint64))
}

func resolvedKey(tenantID, deviceID string) string {
	return tenantID + ":" + deviceID
}
