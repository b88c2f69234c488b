// Package cleanup provides the background cache cleanup worker
package cleanup

import (
	"context"
	"time"

	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/caching/manager"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
)

// Worker handles background cache cleanup operations
type Worker struct {
	cacheManager *manager.Manager
	config       *Config
	logger       *logging.ChanneledLogger
}

// NewWorker creates a new cleanup worker with injected configuration
func NewWorker(cacheManager *manager.Manager, config *Config, logger *logging.ChanneledLogger) *Worker {
	return &Worker{
		cacheManager: cacheManager,
		config:       config,
		logger:       logger,
	}
}

// Start begins the cleanup worker routine, using the configured interval
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.CleanupInterval)
	defer ticker.Stop()

	w.logger.Cache().Info("Cache cleanup worker started", "interval", w.config.CleanupInterval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Cache().Info("Cache cleanup worker stopping")
			return
		case <-ticker.C:
			w.performCleanup()
		}
	}
}

// performCleanup executes cleanup for all tenants with live caches
func (w *Worker) performCleanup() {
	start := time.Now()

	accessed := w.cacheManager.TenantLastAccessed()
	tenantCutoff := time.Now().UTC().Add(-w.config.TenantTimeout)
	profilesEvicted := 0
	tenantsRemoved := 0

	for tenantID, lastAccess := range accessed {
		if lastAccess.Before(tenantCutoff) {
			// The whole tenant has gone cold; drop its caches outright
			w.cacheManager.RemoveTenant(tenantID)
			tenantsRemoved++
			continue
		}

		profilesEvicted += w.cacheManager.EvictIdleProfiles(tenantID, w.config.ProfileIdleTTL)
	}

	w.logger.Cache().Info("Periodic cache cleanup complete",
		"tenants", len(accessed),
		"tenantsRemoved", tenantsRemoved,
		"profilesEvicted", profilesEvicted,
		"duration", time.Since(start),
	)
}
