// Package stores provides concrete cache store implementations
package stores

import (
	"sync"
	"time"

	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/content"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/caching/types"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
)

// RankingsStore implements ranking state caching with tenant isolation
type RankingsStore struct {
	tenantCaches map[string]*types.TenantRankingCache
	mu           sync.RWMutex
	logger       *logging.ChanneledLogger
}

// NewRankingsStore creates a new rankings cache store
func NewRankingsStore(logger *logging.ChanneledLogger) *RankingsStore {
	if logger != nil {
		logger.Cache().Info("Initializing rankings cache store")
	}
	return &RankingsStore{
		tenantCaches: make(map[string]*types.TenantRankingCache),
		logger:       logger,
	}
}

// InitializeTenant creates cache structures for a tenant
func (rs *RankingsStore) InitializeTenant(tenantID string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.tenantCaches[tenantID] == nil {
		rs.tenantCaches[tenantID] = &types.TenantRankingCache{
			ScoreHistory: make(map[string]float64),
		}

		if rs.logger != nil {
			rs.logger.Cache().Debug("Tenant ranking cache initialized", "tenantId", tenantID)
		}
	}
}

// GetTenantCache safely retrieves a tenant's ranking cache
func (rs *RankingsStore) GetTenantCache(tenantID string) (*types.TenantRankingCache, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	cache, exists := rs.tenantCaches[tenantID]
	return cache, exists
}

// GetScoreHistory returns a copy of the tenant's previous-score map
func (rs *RankingsStore) GetScoreHistory(tenantID string) (map[string]float64, bool) {
	cache, exists := rs.GetTenantCache(tenantID)
	if !exists {
		return nil, false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	history := make(map[string]float64, len(cache.ScoreHistory))
	for id, score := range cache.ScoreHistory {
		history[id] = score
	}
	return history, true
}

// ReplaceScoreHistory swaps in the history produced by a scoring pass
func (rs *RankingsStore) ReplaceScoreHistory(tenantID string, history map[string]float64) {
	cache, exists := rs.GetTenantCache(tenantID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	cache.ScoreHistory = history
	cache.Mu.Unlock()
}

// SetSnapshot stores the scored output of the most recent pass
func (rs *RankingsStore) SetSnapshot(tenantID string, snapshot []content.ScoredItem) {
	cache, exists := rs.GetTenantCache(tenantID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	cache.LastSnapshot = snapshot
	cache.LastRefreshed = time.Now().UTC()
	cache.Mu.Unlock()
}

// GetSnapshot returns the most recent scored snapshot and its age
func (rs *RankingsStore) GetSnapshot(tenantID string) ([]content.ScoredItem, time.Time, bool) {
	cache, exists := rs.GetTenantCache(tenantID)
	if !exists {
		return nil, time.Time{}, false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	if cache.LastSnapshot == nil {
		return nil, time.Time{}, false
	}

	snapshot := make([]content.ScoredItem, len(cache.LastSnapshot))
	copy(snapshot, cache.LastSnapshot)
	return snapshot, cache.LastRefreshed, true
}

// RemoveTenant drops all ranking state for a tenant
func (rs *RankingsStore) RemoveTenant(tenantID string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	delete(rs.tenantCaches, tenantID)
}
