package stores

import (
	"sync"
	"time"

	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/profile"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/caching/types"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
)

// ProfilesStore implements hot preference-profile caching with tenant isolation
type ProfilesStore struct {
	tenantCaches map[string]*types.TenantProfileCache
	mu           sync.RWMutex
	logger       *logging.ChanneledLogger
}

// NewProfilesStore creates a new profiles cache store
func NewProfilesStore(logger *logging.ChanneledLogger) *ProfilesStore {
	if logger != nil {
		logger.Cache().Info("Initializing profiles cache store")
	}
	return &ProfilesStore{
		tenantCaches: make(map[string]*types.TenantProfileCache),
		logger:       logger,
	}
}

// InitializeTenant creates cache structures for a tenant
func (ps *ProfilesStore) InitializeTenant(tenantID string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.tenantCaches[tenantID] == nil {
		ps.tenantCaches[tenantID] = &types.TenantProfileCache{
			Profiles:     make(map[string]*profile.State),
			LastAccessed: make(map[string]time.Time),
			LastLoaded:   time.Now().UTC(),
		}

		if ps.logger != nil {
			ps.logger.Cache().Debug("Tenant profile cache initialized", "tenantId", tenantID)
		}
	}
}

// GetTenantCache safely retrieves a tenant's profile cache
func (ps *ProfilesStore) GetTenantCache(tenantID string) (*types.TenantProfileCache, bool) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	cache, exists := ps.tenantCaches[tenantID]
	return cache, exists
}

// GetProfile returns the cached profile for a device, if present
func (ps *ProfilesStore) GetProfile(tenantID, deviceID string) (*profile.State, bool) {
	cache, exists := ps.GetTenantCache(tenantID)
	if !exists {
		return nil, false
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	state, found := cache.Profiles[deviceID]
	if found {
		cache.LastAccessed[deviceID] = time.Now().UTC()
	}
	return state, found
}

// SetProfile stores a device's profile in the hot cache
func (ps *ProfilesStore) SetProfile(tenantID string, state *profile.State) {
	cache, exists := ps.GetTenantCache(tenantID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	cache.Profiles[state.DeviceID] = state
	cache.LastAccessed[state.DeviceID] = time.Now().UTC()
	cache.Mu.Unlock()
}

// RemoveProfile drops one device's cached profile
func (ps *ProfilesStore) RemoveProfile(tenantID, deviceID string) {
	cache, exists := ps.GetTenantCache(tenantID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	delete(cache.Profiles, deviceID)
	delete(cache.LastAccessed, deviceID)
	cache.Mu.Unlock()
}

// EvictIdleProfiles removes profiles untouched for longer than maxIdle
// and reports how many were evicted.
func (ps *ProfilesStore) EvictIdleProfiles(tenantID string, maxIdle time.Duration) int {
	cache, exists := ps.GetTenantCache(tenantID)
	if !exists {
		return 0
	}

	cutoff := time.Now().UTC().Add(-maxIdle)
	evicted := 0

	cache.Mu.Lock()
	for deviceID, lastAccess := range cache.LastAccessed {
		if lastAccess.Before(cutoff) {
			delete(cache.Profiles, deviceID)
			delete(cache.LastAccessed, deviceID)
			evicted++
		}
	}
	cache.Mu.Unlock()

	return evicted
}

// ProfileCount reports how many profiles a tenant holds in the hot cache
func (ps *ProfilesStore) ProfileCount(tenantID string) int {
	cache, exists := ps.GetTenantCache(tenantID)
	if !exists {
		return 0
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	return len(cache.Profiles)
}

// RemoveTenant drops all profile state for a tenant
func (ps *ProfilesStore) RemoveTenant(tenantID string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	delete(ps.tenantCaches, tenantID)
}
