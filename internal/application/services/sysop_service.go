package services

import (
	"fmt"
	"time"

	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/caching/manager"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/performance"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/security"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/tenant"
	"golang.org/x/crypto/bcrypt"
)

// SysOpService handles operator dashboard login and status reporting
type SysOpService struct {
	cacheManager  *manager.Manager
	tenantManager *tenant.Manager
	logger        *logging.ChanneledLogger
	perfTracker   *performance.Tracker
}

// NewSysOpService creates a new sysop service with injected dependencies
func NewSysOpService(
	cacheManager *manager.Manager,
	tenantManager *tenant.Manager,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *SysOpService {
	return &SysOpService{
		cacheManager:  cacheManager,
		tenantManager: tenantManager,
		logger:        logger,
		perfTracker:   perfTracker,
	}
}

// Authenticate validates the operator password for a tenant and mints
// a dashboard token.
func (s *SysOpService) Authenticate(tenantCtx *tenant.Context, password string) (string, error) {
	if tenantCtx.Config.SysOpPasswordHash == "" {
		return "", fmt.Errorf("sysop access not configured for tenant %s", tenantCtx.TenantID)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(tenantCtx.Config.SysOpPasswordHash), []byte(password)); err != nil {
		s.logger.Auth().Warn("SysOp login rejected", "tenantId", tenantCtx.TenantID)
		return "", fmt.Errorf("invalid credentials")
	}

	token, err := security.GenerateSysOpToken(tenantCtx.TenantID, tenantCtx.Config.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate sysop token: %w", err)
	}

	s.logger.Auth().Info("SysOp login accepted", "tenantId", tenantCtx.TenantID)
	return token, nil
}

// ValidateToken checks a dashboard token against the tenant's secret
func (s *SysOpService) ValidateToken(tenantCtx *tenant.Context, tokenString string) bool {
	claims, err := security.ValidateJWT(tokenString, tenantCtx.Config.JWTSecret)
	if err != nil {
		return false
	}
	return security.IsSysOpClaims(claims)
}

// TenantStatus is one row of the dashboard status view
type TenantStatus struct {
	TenantID      string    `json:"tenantId"`
	Profiles      int       `json:"profiles"`
	TrendingItems int       `json:"trendingItems"`
	LastAccessed  time.Time `json:"lastAccessed"`
}

// Status summarizes engine state for the operator dashboard
type Status struct {
	Uptime        string                                 `json:"uptime"`
	ActiveTenants int                                    `json:"activeTenants"`
	Tenants       []TenantStatus                         `json:"tenants"`
	Operations    map[string]*performance.OperationStats `json:"operations"`
}

// GetStatus assembles the dashboard status snapshot
func (s *SysOpService) GetStatus() *Status {
	accessed := s.cacheManager.TenantLastAccessed()
	tenants := make([]TenantStatus, 0, len(accessed))
	for tenantID, lastAccessed := range accessed {
		status := TenantStatus{
			TenantID:     tenantID,
			Profiles:     s.cacheManager.ProfileCount(tenantID),
			LastAccessed: lastAccessed,
		}
		if snapshot, _, ok := s.cacheManager.GetTrendingSnapshot(tenantID); ok {
			status.TrendingItems = len(snapshot)
		}
		tenants = append(tenants, status)
	}

	activeCount, _ := s.tenantManager.GetActiveTenantCount()

	return &Status{
		Uptime:        s.perfTracker.Uptime().Round(time.Second).String(),
		ActiveTenants: activeCount,
		Tenants:       tenants,
		Operations:    s.perfTracker.GetOperationStats(),
	}
}
