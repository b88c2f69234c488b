// Package manager provides centralized cache operations with proper tenant isolation
package manager

import (
	"sync"
	"time"

	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/content"
	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/profile"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/caching/stores"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
)

// Manager provides centralized cache operations with proper tenant
// isolation by delegating to specialized stores.
type Manager struct {
	Mu            sync.RWMutex
	LastAccessed  map[string]time.Time
	rankingsStore *stores.RankingsStore
	profilesStore *stores.ProfilesStore
	logger        *logging.ChanneledLogger
}

// NewManager creates a cache manager backed by the per-concern stores
func NewManager(logger *logging.ChanneledLogger) *Manager {
	if logger != nil {
		logger.Cache().Info("Initializing cache manager", "stores", []string{"rankings", "profiles"})
	}

	return &Manager{
		LastAccessed:  make(map[string]time.Time),
		rankingsStore: stores.NewRankingsStore(logger),
		profilesStore: stores.NewProfilesStore(logger),
		logger:        logger,
	}
}

// InitializeTenant creates cache structures for a tenant
func (m *Manager) InitializeTenant(tenantID string) {
	if m.logger != nil {
		m.logger.Cache().Debug("Initializing tenant cache", "tenantId", tenantID)
	}

	m.rankingsStore.InitializeTenant(tenantID)
	m.profilesStore.InitializeTenant(tenantID)
	m.updateTenantAccessTime(tenantID)
}

// RemoveTenant drops every cache a tenant holds
func (m *Manager) RemoveTenant(tenantID string) {
	m.rankingsStore.RemoveTenant(tenantID)
	m.profilesStore.RemoveTenant(tenantID)

	m.Mu.Lock()
	delete(m.LastAccessed, tenantID)
	m.Mu.Unlock()

	if m.logger != nil {
		m.logger.Cache().Info("Tenant caches removed", "tenantId", tenantID)
	}
}

func (m *Manager) updateTenantAccessTime(tenantID string) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.LastAccessed[tenantID] = time.Now().UTC()
}

// Ranking operations

// GetScoreHistory returns the previous-score map for the trend classifier
func (m *Manager) GetScoreHistory(tenantID string) (map[string]float64, bool) {
	m.updateTenantAccessTime(tenantID)
	return m.rankingsStore.GetScoreHistory(tenantID)
}

// ReplaceScoreHistory swaps in the history from a completed scoring pass
func (m *Manager) ReplaceScoreHistory(tenantID string, history map[string]float64) {
	m.updateTenantAccessTime(tenantID)
	m.rankingsStore.ReplaceScoreHistory(tenantID, history)
}

// SetTrendingSnapshot stores the latest scored item set
func (m *Manager) SetTrendingSnapshot(tenantID string, snapshot []content.ScoredItem) {
	m.updateTenantAccessTime(tenantID)
	m.rankingsStore.SetSnapshot(tenantID, snapshot)
}

// GetTrendingSnapshot returns the latest scored item set and its refresh time
func (m *Manager) GetTrendingSnapshot(tenantID string) ([]content.ScoredItem, time.Time, bool) {
	m.updateTenantAccessTime(tenantID)
	return m.rankingsStore.GetSnapshot(tenantID)
}

// Profile operations

// GetProfile returns the hot-cached preference profile for a device
func (m *Manager) GetProfile(tenantID, deviceID string) (*profile.State, bool) {
	m.updateTenantAccessTime(tenantID)
	return m.profilesStore.GetProfile(tenantID, deviceID)
}

// SetProfile caches a device's preference profile
func (m *Manager) SetProfile(tenantID string, state *profile.State) {
	m.updateTenantAccessTime(tenantID)
	m.profilesStore.SetProfile(tenantID, state)
}

// RemoveProfile drops a device's cached profile
func (m *Manager) RemoveProfile(tenantID, deviceID string) {
	m.profilesStore.RemoveProfile(tenantID, deviceID)
}

// EvictIdleProfiles removes profiles idle past maxIdle for one tenant
func (m *Manager) EvictIdleProfiles(tenantID string, maxIdle time.Duration) int {
	return m.profilesStore.EvictIdleProfiles(tenantID, maxIdle)
}

// ProfileCount reports hot-cache occupancy for one tenant
func (m *Manager) ProfileCount(tenantID string) int {
	return m.profilesStore.ProfileCount(tenantID)
}

// TenantLastAccessed reports when each tenant's caches were last touched
func (m *Manager) TenantLastAccessed() map[string]time.Time {
	m.Mu.RLock()
	defer m.Mu.RUnlock()

	accessed := make(map[string]time.Time, len(m.LastAccessed))
	for tenantID, t := range m.LastAccessed {
		accessed[tenantID] = t
	}
	return accessed
}
