// Package tenant provides tenant detection and validation.
package tenant

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// Detector handles tenant detection from HTTP requests
type Detector struct {
	registry    *Registry
	multiTenant bool
	logger      *logging.ChanneledLogger
	mu          sync.RWMutex
}

// NewDetector creates a new tenant detector
func NewDetector(logger *logging.ChanneledLogger) (*Detector, error) {
	registry, err := LoadTenantRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant registry: %w", err)
	}

	multiTenant := false
	if val := os.Getenv("ENABLE_MULTI_TENANT"); val != "" {
		multiTenant, _ = strconv.ParseBool(val)
	}

	return &Detector{
		registry:    registry,
		multiTenant: multiTenant,
		logger:      logger,
	}, nil
}

// DetectTenant extracts tenant ID from request and auto-registers if needed
func (d *Detector) DetectTenant(c *gin.Context) (string, error) {
	var tenantID string

	if d.multiTenant {
		tenantID = c.GetHeader("X-Tenant-ID")
		// Websocket dashboard clients cannot set custom headers, so the
		// tenant may also arrive as a query parameter.
		if tenantID == "" {
			tenantID = c.Query("tenantId")
		}

		if tenantID == "" {
			return "", fmt.Errorf("missing tenant ID header in multi-tenant mode")
		}
	} else {
		// Single tenant mode - always use "default"
		tenantID = "default"
	}

	d.mu.RLock()
	_, exists := d.registry.Tenants[tenantID]
	d.mu.RUnlock()

	if !exists {
		if tenantID == "default" || d.hasConfigDirectory(tenantID) {
			if err := RegisterTenant(tenantID); err != nil {
				return "", fmt.Errorf("failed to auto-register tenant %s: %w", tenantID, err)
			}
			if err := d.RefreshRegistry(); err != nil {
				return "", fmt.Errorf("failed to reload registry after auto-registration: %w", err)
			}
		} else {
			return "", fmt.Errorf("unknown tenant: %s", tenantID)
		}
	}

	return tenantID, nil
}

// GetTenantStatus returns the registry status for a tenant
func (d *Detector) GetTenantStatus(tenantID string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if entry, exists := d.registry.Tenants[tenantID]; exists {
		return entry.Status
	}
	return "unknown"
}

// KnownTenants lists every tenant ID present in the registry
func (d *Detector) KnownTenants() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ids := make([]string, 0, len(d.registry.Tenants))
	for id := range d.registry.Tenants {
		ids = append(ids, id)
	}
	return ids
}

// RefreshRegistry reloads the registry from disk
func (d *Detector) RefreshRegistry() error {
	registry, err := LoadTenantRegistry()
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.registry = registry
	d.mu.Unlock()
	return nil
}

func (d *Detector) hasConfigDirectory(tenantID string) bool {
	root, err := baseDir()
	if err != nil {
		return false
	}
	info, err := os.Stat(filepath.Join(root, "config", tenantID))
	return err == nil && info.IsDir()
}
