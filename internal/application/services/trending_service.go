package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	entities "github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/content"
	domainServices "github.com/PulseWireMedia/pulsewire-go/internal/domain/services"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/caching/manager"
	infracontent "github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/content"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/messaging"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/performance"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/tenant"
	"github.com/PulseWireMedia/pulsewire-go/pkg/config"
	gocache "github.com/patrickmn/go-cache"
)

// TrendingService runs scoring passes over the tenant's active item set
// and serves trending and breaking views from a short-TTL snapshot.
type TrendingService struct {
	source       infracontent.Source
	cacheManager *manager.Manager
	broadcaster  *messaging.TrendBroadcaster
	classifier   *domainServices.TrendClassifier
	snapshots    *gocache.Cache
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker
}

// NewTrendingService creates a new trending service with injected dependencies
func NewTrendingService(
	source infracontent.Source,
	cacheManager *manager.Manager,
	broadcaster *messaging.TrendBroadcaster,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *TrendingService {
	return &TrendingService{
		source:       source,
		cacheManager: cacheManager,
		broadcaster:  broadcaster,
		classifier:   domainServices.NewTrendClassifier(config.VelocityThreshold, config.VelocityBonus, config.TrendDeltaRatio),
		snapshots:    gocache.New(config.TrendingTTL, 2*config.TrendingTTL),
		logger:       logger,
		perfTracker:  perfTracker,
	}
}

// RefreshTrending fetches the tenant's active item set, scores it
// against the previous pass, and publishes the fresh snapshot. Score
// history entries for items gone from the active set are dropped with
// the pass.
func (s *TrendingService) RefreshTrending(ctx context.Context, tenantCtx *tenant.Context) ([]entities.ScoredItem, error) {
	marker := s.perfTracker.StartOperation("trending_refresh", tenantCtx.TenantID)
	defer marker.Complete()

	items, err := s.source.FetchItems(ctx, entities.Query{Page: 1, Limit: config.ContentPageSize})
	if err != nil {
		marker.SetError(err)
		return nil, fmt.Errorf("trending fetch failed for tenant %s: %w", tenantCtx.TenantID, err)
	}

	history, _ := s.cacheManager.GetScoreHistory(tenantCtx.TenantID)
	scored, nextHistory := s.classifier.ClassifyAll(items, history, time.Now().UTC())

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Slug < scored[j].Slug
	})

	s.cacheManager.ReplaceScoreHistory(tenantCtx.TenantID, nextHistory)
	s.cacheManager.SetTrendingSnapshot(tenantCtx.TenantID, scored)
	s.snapshots.Set(tenantCtx.TenantID, scored, gocache.DefaultExpiration)
	s.broadcaster.BroadcastSnapshot(tenantCtx.TenantID, scored)

	s.logger.Ranking().Info("Scoring pass complete",
		"tenantId", tenantCtx.TenantID, "items", len(scored), "tracked", len(nextHistory))

	marker.SetSuccess(true)
	return scored, nil
}

// GetTrending returns the top trending items, refreshing the snapshot
// when the TTL has lapsed.
func (s *TrendingService) GetTrending(ctx context.Context, tenantCtx *tenant.Context, limit int) ([]entities.ScoredItem, error) {
	scored, err := s.currentSnapshot(ctx, tenantCtx)
	if err != nil {
		return nil, err
	}
	return capScored(scored, limit, config.TrendingDisplayLimit), nil
}

// GetBreaking returns the rising slice of the trending snapshot.
func (s *TrendingService) GetBreaking(ctx context.Context, tenantCtx *tenant.Context, limit int) ([]entities.ScoredItem, error) {
	scored, err := s.currentSnapshot(ctx, tenantCtx)
	if err != nil {
		return nil, err
	}

	rising := make([]entities.ScoredItem, 0, len(scored))
	for _, item := range scored {
		if item.Trend == entities.TrendRising {
			rising = append(rising, item)
		}
	}
	return capScored(rising, limit, config.BreakingDisplayLimit), nil
}

func (s *TrendingService) currentSnapshot(ctx context.Context, tenantCtx *tenant.Context) ([]entities.ScoredItem, error) {
	if cached, found := s.snapshots.Get(tenantCtx.TenantID); found {
		return cached.([]entities.ScoredItem), nil
	}
	return s.RefreshTrending(ctx, tenantCtx)
}

func capScored(scored []entities.ScoredItem, limit, fallback int) []entities.ScoredItem {
	if limit <= 0 {
		limit = fallback
	}
	if limit > len(scored) {
		limit = len(scored)
	}
	out := make([]entities.ScoredItem, limit)
	copy(out, scored[:limit])
	return out
}
