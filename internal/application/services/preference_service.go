// Package services provides the application-level orchestration for
// ranking, personalization, and preference tracking.
package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/profile"
	domainServices "github.com/PulseWireMedia/pulsewire-go/internal/domain/services"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/caching/manager"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/performance"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/persistence/preferences"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/tenant"
	"github.com/PulseWireMedia/pulsewire-go/pkg/config"
)

// PreferenceService manages per-device preference profiles: visit and
// read tracking, retention, derived top categories, and the consent
// gate. Persistence is best-effort; the hot copy lives in the profiles
// cache.
type PreferenceService struct {
	cacheManager *manager.Manager
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker

	stores   map[string]preferences.Store
	storesMu sync.Mutex
}

// NewPreferenceService creates a new preference service with injected dependencies
func NewPreferenceService(cacheManager *manager.Manager, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *PreferenceService {
	return &PreferenceService{
		cacheManager: cacheManager,
		logger:       logger,
		perfTracker:  perfTracker,
		stores:       make(map[string]preferences.Store),
	}
}

// storeFor returns the tenant's preference store, creating it on first
// use. A tenant whose database cannot host the store degrades to an
// in-memory store so profile tracking keeps working for the process
// lifetime.
func (s *PreferenceService) storeFor(tenantCtx *tenant.Context) preferences.Store {
	s.storesMu.Lock()
	defer s.storesMu.Unlock()

	if store, exists := s.stores[tenantCtx.TenantID]; exists {
		return store
	}

	store, err := preferences.NewSQLStore(tenantCtx.Database.Conn)
	if err != nil {
		s.logger.Profile().Error("Failed to initialize preference store, degrading to memory",
			"tenantId", tenantCtx.TenantID, "error", err.Error())
		memStore := preferences.NewMemoryStore()
		s.stores[tenantCtx.TenantID] = memStore
		return memStore
	}

	s.stores[tenantCtx.TenantID] = store
	return store
}

// HasConsent reports whether the device granted preference tracking.
// Absent or unreadable flags count as no consent.
func (s *PreferenceService) HasConsent(tenantCtx *tenant.Context, deviceID string) bool {
	value, err := s.storeFor(tenantCtx).Get(preferences.ConsentKey(deviceID))
	if err != nil {
		s.logger.Profile().Warn("Consent flag read failed",
			"tenantId", tenantCtx.TenantID, "deviceId", deviceID, "error", err.Error())
		return false
	}
	return string(value) == "true"
}

// SetConsent records the device's tracking consent. Revoking consent
// also clears any accumulated profile.
func (s *PreferenceService) SetConsent(tenantCtx *tenant.Context, deviceID string, granted bool) error {
	value := "false"
	if granted {
		value = "true"
	}
	if err := s.storeFor(tenantCtx).Set(preferences.ConsentKey(deviceID), []byte(value)); err != nil {
		return fmt.Errorf("failed to persist consent flag: %w", err)
	}
	if !granted {
		return s.Reset(tenantCtx, deviceID)
	}
	return nil
}

// RecordVisit registers a category page visit for the device. Without
// consent the call is inert and returns an empty profile.
func (s *PreferenceService) RecordVisit(tenantCtx *tenant.Context, deviceID, categorySlug string) (*profile.State, error) {
	marker := s.perfTracker.StartOperation("preference_record_visit", tenantCtx.TenantID)
	defer marker.Complete()

	if !s.HasConsent(tenantCtx, deviceID) {
		marker.SetSuccess(true)
		return profile.NewState(deviceID), nil
	}

	state := s.loadState(tenantCtx, deviceID)
	s.applyVisit(state, categorySlug, time.Now().UTC())
	s.deriveAndSave(tenantCtx, state)

	marker.SetSuccess(true)
	return state, nil
}

// RecordRead registers an article read. A read carries the category
// signal of a visit plus a per-article read count.
func (s *PreferenceService) RecordRead(tenantCtx *tenant.Context, deviceID, categorySlug, articleSlug string) (*profile.State, error) {
	marker := s.perfTracker.StartOperation("preference_record_read", tenantCtx.TenantID)
	defer marker.Complete()

	if !s.HasConsent(tenantCtx, deviceID) {
		marker.SetSuccess(true)
		return profile.NewState(deviceID), nil
	}

	state := s.loadState(tenantCtx, deviceID)
	now := time.Now().UTC()
	s.applyVisit(state, categorySlug, now)
	if articleSlug != "" {
		state.ArticleReads[articleSlug]++
	}
	s.deriveAndSave(tenantCtx, state)

	marker.SetSuccess(true)
	return state, nil
}

// GetProfile returns the device's current profile. Devices without
// consent or without history get an empty profile.
func (s *PreferenceService) GetProfile(tenantCtx *tenant.Context, deviceID string) *profile.State {
	if !s.HasConsent(tenantCtx, deviceID) {
		return profile.NewState(deviceID)
	}
	return s.loadState(tenantCtx, deviceID)
}

// Reset clears the device's profile from cache and store. Resetting an
// absent profile is a no-op.
func (s *PreferenceService) Reset(tenantCtx *tenant.Context, deviceID string) error {
	s.cacheManager.RemoveProfile(tenantCtx.TenantID, deviceID)
	if err := s.storeFor(tenantCtx).Remove(preferences.ProfileKey(deviceID)); err != nil {
		return fmt.Errorf("failed to remove persisted profile: %w", err)
	}
	s.logger.Profile().Info("Profile reset", "tenantId", tenantCtx.TenantID, "deviceId", deviceID)
	return nil
}

// loadState returns the hot profile, falling back to the persisted copy
// and finally to a fresh empty state. Read failures degrade to empty.
func (s *PreferenceService) loadState(tenantCtx *tenant.Context, deviceID string) *profile.State {
	if state, exists := s.cacheManager.GetProfile(tenantCtx.TenantID, deviceID); exists {
		return state
	}

	raw, err := s.storeFor(tenantCtx).Get(preferences.ProfileKey(deviceID))
	if err != nil {
		s.logger.Profile().Warn("Profile load failed, starting empty",
			"tenantId", tenantCtx.TenantID, "deviceId", deviceID, "error", err.Error())
		return profile.NewState(deviceID)
	}
	if raw == nil {
		return profile.NewState(deviceID)
	}

	state := profile.NewState(deviceID)
	if err := json.Unmarshal(raw, state); err != nil {
		s.logger.Profile().Warn("Persisted profile unreadable, starting empty",
			"tenantId", tenantCtx.TenantID, "deviceId", deviceID, "error", err.Error())
		return profile.NewState(deviceID)
	}
	state.DeviceID = deviceID
	if state.Visits == nil {
		state.Visits = make(map[string]*profile.VisitRecord)
	}
	if state.ArticleReads == nil {
		state.ArticleReads = make(map[string]int)
	}

	s.cacheManager.SetProfile(tenantCtx.TenantID, state)
	return state
}

// applyVisit increments the category's visit record and enforces the
// retention cap. The record just incremented is never evicted.
func (s *PreferenceService) applyVisit(state *profile.State, categorySlug string, now time.Time) {
	record, exists := state.Visits[categorySlug]
	if !exists {
		record = &profile.VisitRecord{CategorySlug: categorySlug}
		state.Visits[categorySlug] = record
	}
	record.Count++
	record.LastVisit = now
	state.TotalVisits++
	state.LastVisit = now

	if len(state.Visits) <= config.MaxVisitRecords {
		return
	}

	sorted := state.SortedVisits()
	for i := len(sorted) - 1; i >= 0 && len(state.Visits) > config.MaxVisitRecords; i-- {
		if sorted[i].CategorySlug == categorySlug {
			continue
		}
		delete(state.Visits, sorted[i].CategorySlug)
	}
}

// deriveAndSave recomputes the derived fields, caches the state, and
// persists it best-effort.
func (s *PreferenceService) deriveAndSave(tenantCtx *tenant.Context, state *profile.State) {
	sorted := state.SortedVisits()
	limit := config.TopCategoriesLimit
	if limit > len(sorted) {
		limit = len(sorted)
	}
	top := make([]string, 0, limit)
	for _, record := range sorted[:limit] {
		top = append(top, record.CategorySlug)
	}
	state.TopCategories = top
	state.ContentType = domainServices.ClassifyContentType(state.VisitCounts(), state.TotalVisits, config.ContentTypeThreshold)

	s.cacheManager.SetProfile(tenantCtx.TenantID, state)

	raw, err := json.Marshal(state)
	if err != nil {
		s.logger.Profile().Error("Profile serialization failed",
			"tenantId", tenantCtx.TenantID, "deviceId", state.DeviceID, "error", err.Error())
		return
	}
	if err := s.storeFor(tenantCtx).Set(preferences.ProfileKey(state.DeviceID), raw); err != nil {
		s.logger.Profile().Warn("Profile persistence failed, keeping hot copy",
			"tenantId", tenantCtx.TenantID, "deviceId", state.DeviceID, "error", err.Error())
	}
}
