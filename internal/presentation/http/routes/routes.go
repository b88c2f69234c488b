// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"net/http"

	"github.com/PulseWireMedia/pulsewire-go/internal/application/container"
	"github.com/PulseWireMedia/pulsewire-go/internal/presentation/http/handlers"
	"github.com/PulseWireMedia/pulsewire-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Initialize handlers
	trendingHandlers := handlers.NewTrendingHandlers(container.TrendingService, container.Logger)
	sectionHandlers := handlers.NewSectionHandlers(container.ContentSource, container.SectionService, container.PreferenceService, container.Logger)
	profileHandlers := handlers.NewProfileHandlers(container.PreferenceService, container.Logger)
	feedHandlers := handlers.NewFeedHandlers(container.PersonalizationService, container.Logger)
	eventHandlers := handlers.NewEventHandlers(container.EventProcessingService, container.Logger)
	sysopHandlers := handlers.NewSysOpHandlers(container.SysOpService, container.TrendingService, container.Logger)
	wsHandlers := handlers.NewWSHandlers(container.TrendBroadcaster, container.Logger)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Reader-facing API with tenant and device resolution
	api := r.Group("/api/v1")
	api.Use(middleware.TenantMiddleware(container.TenantManager, container.PerfTracker))
	api.Use(middleware.DeviceMiddleware())
	{
		api.GET("/trending", trendingHandlers.GetTrending)
		api.GET("/breaking", trendingHandlers.GetBreaking)
		api.GET("/sections", sectionHandlers.GetSections)
		api.GET("/feed", feedHandlers.GetFeed)

		api.GET("/profile", profileHandlers.GetProfile)
		api.POST("/profile/consent", profileHandlers.SetConsent)
		api.DELETE("/profile", profileHandlers.ResetProfile)

		api.POST("/events", eventHandlers.PostEvents)
	}

	// Operator dashboard API
	sysopAPI := r.Group("/api/sysop")
	sysopAPI.Use(middleware.TenantMiddleware(container.TenantManager, container.PerfTracker))
	{
		sysopAPI.POST("/login", sysopHandlers.Login)

		authed := sysopAPI.Group("")
		authed.Use(middleware.SysOpAuthMiddleware(container.SysOpService))
		{
			authed.GET("/status", sysopHandlers.GetStatus)
			authed.POST("/trending/refresh", sysopHandlers.RefreshTrending)
		}
	}

	// Live trend stream for dashboards
	ws := r.Group("/ws")
	ws.Use(middleware.TenantMiddleware(container.TenantManager, container.PerfTracker))
	{
		ws.GET("/trends", wsHandlers.TrendSocket)
	}

	return r
}
