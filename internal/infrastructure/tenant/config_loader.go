// Package tenant handles loading and providing tenant-specific configurations.
package tenant

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
)

// Config represents the structure of a single tenant's configuration
type Config struct {
	TenantID          string   `json:"tenantId"`
	Domains           []string `json:"domains"`
	Status            string   `json:"status"`
	TursoDatabase     string   `json:"TURSO_DATABASE_URL"`
	TursoToken        string   `json:"TURSO_AUTH_TOKEN"`
	TursoEnabled      bool     `json:"TURSO_ENABLED"`
	JWTSecret         string   `json:"JWT_SECRET"`
	SysOpPasswordHash string   `json:"SYSOP_PASSWORD_HASH,omitempty"`
	ContentSourceURL  string   `json:"CONTENT_SOURCE_URL,omitempty"`
	SQLitePath        string   `json:"-"`
}

// RegistryEntry describes one tenant in the registry file
type RegistryEntry struct {
	TenantID     string    `json:"tenantId"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// Registry is the set of tenants this instance serves
type Registry struct {
	Tenants map[string]RegistryEntry `json:"tenants"`
}

// baseDir resolves the configuration root for this instance
func baseDir() (string, error) {
	if dir := os.Getenv("PULSEWIRE_HOME"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, "pulsewire-server"), nil
}

// LoadTenantConfig loads configuration for a specific tenant from its env.json file.
func LoadTenantConfig(tenantID string, logger *logging.ChanneledLogger) (*Config, error) {
	root, err := baseDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(root, "config", tenantID, "env.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("tenant config file not found at %s", configPath)
	}

	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("could not read tenant config file: %w", err)
	}

	var tenantConfig Config
	if err := json.Unmarshal(configFile, &tenantConfig); err != nil {
		return nil, fmt.Errorf("could not parse tenant config json: %w", err)
	}

	tenantConfig.TenantID = tenantID
	tenantConfig.SQLitePath = filepath.Join(root, "db", tenantID, "pulsewire.db")

	if logger != nil {
		logger.Tenant().Debug("Loaded tenant config", "tenantId", tenantID, "turso", tenantConfig.TursoEnabled)
	}

	return &tenantConfig, nil
}

// LoadTenantRegistry reads the tenant registry from disk, returning an
// empty registry when none exists yet.
func LoadTenantRegistry() (*Registry, error) {
	root, err := baseDir()
	if err != nil {
		return nil, err
	}

	registryPath := filepath.Join(root, "config", "registry.json")
	data, err := os.ReadFile(registryPath)
	if os.IsNotExist(err) {
		return &Registry{Tenants: make(map[string]RegistryEntry)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read tenant registry: %w", err)
	}

	var registry Registry
	if err := json.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("could not parse tenant registry: %w", err)
	}
	if registry.Tenants == nil {
		registry.Tenants = make(map[string]RegistryEntry)
	}

	return &registry, nil
}

// RegisterTenant adds a tenant to the registry and seeds a default
// env.json when the tenant has none.
func RegisterTenant(tenantID string) error {
	root, err := baseDir()
	if err != nil {
		return err
	}

	registry, err := LoadTenantRegistry()
	if err != nil {
		return err
	}

	registry.Tenants[tenantID] = RegistryEntry{
		TenantID:     tenantID,
		Status:       "active",
		RegisteredAt: time.Now().UTC(),
	}

	configDir := filepath.Join(root, "config", tenantID)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create tenant config directory: %w", err)
	}

	envPath := filepath.Join(configDir, "env.json")
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		seed := Config{TenantID: tenantID, Status: "active"}
		seedData, err := json.MarshalIndent(seed, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal seed tenant config: %w", err)
		}
		if err := os.WriteFile(envPath, seedData, 0644); err != nil {
			return fmt.Errorf("failed to write seed tenant config: %w", err)
		}
	}

	registryData, err := json.MarshalIndent(registry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tenant registry: %w", err)
	}

	registryPath := filepath.Join(root, "config", "registry.json")
	if err := os.WriteFile(registryPath, registryData, 0644); err != nil {
		return fmt.Errorf("failed to write tenant registry: %w", err)
	}

	return nil
}
