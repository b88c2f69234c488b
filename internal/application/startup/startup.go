// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PulseWireMedia/pulsewire-go/internal/application/container"
	entities "github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/content"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/caching/cleanup"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/tenant"
	"github.com/PulseWireMedia/pulsewire-go/internal/presentation/http/server"
	"github.com/PulseWireMedia/pulsewire-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// Initialize performs the complete multi-tenant startup sequence
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	// Step 1: Create the channeled logger everything else reports through
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Startup().Info("PulseWire ranking engine starting")

	// Step 2: Initialize tenant system
	tenantManager := tenant.NewManager(logger)

	// Step 3: Load tenant registry to discover all tenants
	registry, err := tenant.LoadTenantRegistry()
	if err != nil {
		return fmt.Errorf("failed to load tenant registry: %w", err)
	}

	if len(registry.Tenants) == 0 {
		logger.Startup().Info("No tenants in registry, creating default tenant")
		if err := tenant.RegisterTenant("default"); err != nil {
			return fmt.Errorf("failed to register default tenant: %w", err)
		}
		registry, err = tenant.LoadTenantRegistry()
		if err != nil {
			return fmt.Errorf("failed to reload registry: %w", err)
		}
	}
	logger.Startup().Info("Tenant registry loaded", "tenants", len(registry.Tenants))

	// Step 4: Pre-activate and validate tenants
	if err := tenantManager.PreActivateAllTenants(); err != nil {
		return fmt.Errorf("tenant pre-activation failed: %w", err)
	}
	if err := tenantManager.ValidatePreActivation(); err != nil {
		return fmt.Errorf("tenant validation failed: %w", err)
	}

	activeCount, err := tenantManager.GetActiveTenantCount()
	if err != nil {
		return fmt.Errorf("failed to get active tenant count: %w", err)
	}
	logger.Startup().Info("Active tenant connections verified", "count", activeCount)

	// Step 5: Initialize cache system per active tenant
	cacheManager := tenantManager.GetCacheManager()
	for tenantID, entry := range registry.Tenants {
		if entry.Status == "active" {
			cacheManager.InitializeTenant(tenantID)
		}
	}

	// Step 6: Create dependency injection container
	appContainer := container.NewContainer(tenantManager, cacheManager, logger)
	logger.Startup().Info("Dependency injection container created with singleton services")

	// Step 7: Start the trend broadcaster and the periodic scoring pass
	go appContainer.TrendBroadcaster.Run(config.SysOpBroadcastInterval, func(tenantID string) ([]entities.ScoredItem, bool) {
		snapshot, _, ok := cacheManager.GetTrendingSnapshot(tenantID)
		return snapshot, ok
	})
	go runScoringPasses(ctx, appContainer, logger)
	logger.Startup().Info("Trend broadcaster and scoring loop started",
		"broadcastInterval", config.SysOpBroadcastInterval, "refreshInterval", config.TrendingTTL)

	// Step 8: Start background cleanup worker
	cleanupWorker := cleanup.NewWorker(cacheManager, cleanup.NewConfig(), logger)
	go cleanupWorker.Start(ctx)
	logger.Startup().Info("Background cleanup worker started")

	// Step 9: Start HTTP server
	port := config.Port
	httpServer := server.New(port, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"activeTenants", activeCount,
		"port", port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown")

	shutdownStart := time.Now()
	cancelBackgroundTasks()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	}
	if err := tenantManager.Close(); err != nil {
		logger.Shutdown().Error("Error closing tenant manager", "error", err.Error())
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// runScoringPasses refreshes every active tenant's trending snapshot on
// the trending TTL cadence so dashboards see fresh passes even without
// reader traffic.
func runScoringPasses(ctx context.Context, appContainer *container.Container, logger *logging.ChanneledLogger) {
	ticker := time.NewTicker(config.TrendingTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, tenantID := range appContainer.TenantManager.ActiveTenantIDs() {
				tenantCtx, err := appContainer.TenantManager.GetContextFromID(tenantID)
				if err != nil {
					logger.Ranking().Error("Scoring pass skipped, no tenant context",
						"tenantId", tenantID, "error", err.Error())
					continue
				}
				if _, err := appContainer.TrendingService.RefreshTrending(ctx, tenantCtx); err != nil {
					logger.Ranking().Warn("Scheduled scoring pass failed",
						"tenantId", tenantID, "error", err.Error())
				}
			}
		}
	}
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
