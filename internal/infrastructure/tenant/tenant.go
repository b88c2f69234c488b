// Package tenant coordinates tenant detection, activation, and context
// creation for every publication served by this instance.
package tenant

import (
	"fmt"
	"sync"

	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/caching/manager"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// Manager coordinates tenant detection and context creation
type Manager struct {
	detector       *Detector
	cacheManager   *manager.Manager
	contexts       map[string]*Context
	contextMutexes sync.Map // Per-tenant mutexes for fine-grained locking
	globalMutex    sync.RWMutex
	logger         *logging.ChanneledLogger
}

// NewManager creates and initializes a new tenant manager.
func NewManager(logger *logging.ChanneledLogger) *Manager {
	detector, err := NewDetector(logger)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize tenant detector: %v", err))
	}

	cacheManager := manager.NewManager(logger)

	return &Manager{
		detector:     detector,
		cacheManager: cacheManager,
		contexts:     make(map[string]*Context),
		logger:       logger,
	}
}

// GetContext creates or retrieves a tenant context for the request
func (m *Manager) GetContext(c *gin.Context) (*Context, error) {
	tenantID, err := m.detector.DetectTenant(c)
	if err != nil {
		return nil, fmt.Errorf("tenant detection failed: %w", err)
	}

	return m.GetContextFromID(tenantID)
}

// GetContextFromID creates or retrieves a tenant context by tenant ID
func (m *Manager) GetContextFromID(tenantID string) (*Context, error) {
	m.globalMutex.RLock()
	if ctx, exists := m.contexts[tenantID]; exists {
		m.globalMutex.RUnlock()
		if ctx.Database != nil && ctx.Database.Conn != nil {
			return ctx, nil
		}
	} else {
		m.globalMutex.RUnlock()
	}

	tenantMutexInterface, _ := m.contextMutexes.LoadOrStore(tenantID, &sync.Mutex{})
	tenantMutex := tenantMutexInterface.(*sync.Mutex)

	tenantMutex.Lock()
	defer tenantMutex.Unlock()

	m.globalMutex.RLock()
	if ctx, exists := m.contexts[tenantID]; exists {
		m.globalMutex.RUnlock()
		if ctx.Database != nil && ctx.Database.Conn != nil {
			return ctx, nil
		}
	} else {
		m.globalMutex.RUnlock()
	}

	return m.createContext(tenantID)
}

// createContext creates a new tenant context
func (m *Manager) createContext(tenantID string) (*Context, error) {
	cfg, err := LoadTenantConfig(tenantID, m.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant config: %w", err)
	}

	db, err := NewDatabase(cfg, m.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	status := m.detector.GetTenantStatus(tenantID)

	ctx := &Context{
		TenantID:     tenantID,
		Config:       cfg,
		Database:     db,
		Status:       status,
		CacheManager: m.cacheManager,
		Logger:       m.logger,
	}

	m.globalMutex.Lock()
	m.contexts[tenantID] = ctx
	m.globalMutex.Unlock()

	return ctx, nil
}

// PreActivateAllTenants activates all tenants in the registry during startup
func (m *Manager) PreActivateAllTenants() error {
	registry, err := LoadTenantRegistry()
	if err != nil {
		return fmt.Errorf("failed to load tenant registry for pre-activation: %w", err)
	}

	for tenantID, entry := range registry.Tenants {
		if entry.Status != "active" {
			continue
		}
		if _, err := m.GetContextFromID(tenantID); err != nil {
			return fmt.Errorf("failed to pre-activate tenant %s: %w", tenantID, err)
		}
		m.logger.Tenant().Info("Tenant pre-activated", "tenantId", tenantID)
	}

	return nil
}

// ValidatePreActivation verifies every activated tenant has a live connection
func (m *Manager) ValidatePreActivation() error {
	m.globalMutex.RLock()
	defer m.globalMutex.RUnlock()

	for tenantID, ctx := range m.contexts {
		if ctx.Database == nil || ctx.Database.Conn == nil {
			return fmt.Errorf("tenant %s has no database connection", tenantID)
		}
		if err := ctx.Database.Conn.Ping(); err != nil {
			return fmt.Errorf("tenant %s database ping failed: %w", tenantID, err)
		}
	}

	return nil
}

// GetActiveTenantCount returns the number of tenants with live connections
func (m *Manager) GetActiveTenantCount() (int, error) {
	m.globalMutex.RLock()
	defer m.globalMutex.RUnlock()

	count := 0
	for _, ctx := range m.contexts {
		if ctx.Database != nil && ctx.Database.Conn != nil && ctx.Database.Conn.Ping() == nil {
			count++
		}
	}
	return count, nil
}

// ActiveTenantIDs lists tenants that currently hold a context
func (m *Manager) ActiveTenantIDs() []string {
	m.globalMutex.RLock()
	defer m.globalMutex.RUnlock()

	ids := make([]string, 0, len(m.contexts))
	for id := range m.contexts {
		ids = append(ids, id)
	}
	return ids
}

// GetCacheManager exposes the shared cache manager
func (m *Manager) GetCacheManager() *manager.Manager {
	return m.cacheManager
}

// GetLogger exposes the shared logger
func (m *Manager) GetLogger() *logging.ChanneledLogger {
	return m.logger
}

// GetDetector exposes the tenant detector
func (m *Manager) GetDetector() *Detector {
	return m.detector
}

// Close releases every tenant context. Pooled connections are shared,
// so individual context closes are no-ops; this exists for shutdown
// symmetry and future non-pooled drivers.
func (m *Manager) Close() error {
	m.globalMutex.Lock()
	defer m.globalMutex.Unlock()

	var firstErr error
	for tenantID, ctx := range m.contexts {
		if err := ctx.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close tenant %s: %w", tenantID, err)
		}
		delete(m.contexts, tenantID)
	}
	return firstErr
}
