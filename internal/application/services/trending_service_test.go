package services

import (
	"context"
	"testing"
	"time"

	entities "github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/content"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/messaging"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/performance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTrending(t *testing.T, source *fakeSource) *TrendingService {
	t.Helper()
	logger := newTestLogger(t)
	return NewTrendingService(
		source,
		newTestCacheManager(t),
		messaging.NewTrendBroadcaster(logger),
		logger,
		performance.NewTracker(performance.DefaultTrackerConfig()),
	)
}

func TestRefreshTrendingOrdersByScore(t *testing.T) {
	now := time.Now()
	source := &fakeSource{items: []entities.Item{
		{ID: "cold", Slug: "cold", CategorySlug: "news", PublishedAt: now.Add(-60 * time.Hour), Views: 10},
		{ID: "hot", Slug: "hot", CategorySlug: "news", PublishedAt: now.Add(-time.Hour), Views: 500, Shares: 20},
	}}
	svc := newTestTrending(t, source)

	scored, err := svc.RefreshTrending(context.Background(), newTestTenantContext())
	require.NoError(t, err)

	require.Len(t, scored, 2)
	assert.Equal(t, "hot", scored[0].ID)
	assert.Greater(t, scored[0].Score, scored[1].Score)
	assert.Equal(t, entities.TrendStable, scored[0].Trend, "first pass has no history")
}

func TestSecondPassClassifiesRising(t *testing.T) {
	now := time.Now()
	item := entities.Item{ID: "a", Slug: "a", CategorySlug: "news", PublishedAt: now.Add(-2 * time.Hour), Views: 10}
	source := &fakeSource{items: []entities.Item{item}}
	svc := newTestTrending(t, source)
	tenantCtx := newTestTenantContext()

	_, err := svc.RefreshTrending(context.Background(), tenantCtx)
	require.NoError(t, err)

	// engagement jumps tenfold between passes
	item.Views = 100
	source.items = []entities.Item{item}

	scored, err := svc.RefreshTrending(context.Background(), tenantCtx)
	require.NoError(t, err)

	require.Len(t, scored, 1)
	assert.Equal(t, entities.TrendRising, scored[0].Trend)
}

func TestGetTrendingUsesSnapshotUntilRefresh(t *testing.T) {
	source := &fakeSource{items: testItems()}
	svc := newTestTrending(t, source)
	tenantCtx := newTestTenantContext()

	_, err := svc.GetTrending(context.Background(), tenantCtx, 0)
	require.NoError(t, err)
	_, err = svc.GetTrending(context.Background(), tenantCtx, 0)
	require.NoError(t, err)

	assert.Len(t, source.lastQueries, 1, "second read must come from the snapshot")
}

func TestGetTrendingRespectsLimit(t *testing.T) {
	source := &fakeSource{items: testItems()}
	svc := newTestTrending(t, source)

	items, err := svc.GetTrending(context.Background(), newTestTenantContext(), 1)
	require.NoError(t, err)

	assert.Len(t, items, 1)
}

func TestGetBreakingFiltersRisingOnly(t *testing.T) {
	now := time.Now()
	item := entities.Item{ID: "a", Slug: "a", CategorySlug: "news", PublishedAt: now.Add(-2 * time.Hour), Views: 10}
	steady := entities.Item{ID: "b", Slug: "b", CategorySlug: "news", PublishedAt: now.Add(-2 * time.Hour), Views: 40}
	source := &fakeSource{items: []entities.Item{item, steady}}
	svc := newTestTrending(t, source)
	tenantCtx := newTestTenantContext()

	_, err := svc.RefreshTrending(context.Background(), tenantCtx)
	require.NoError(t, err)

	item.Views = 100
	source.items = []entities.Item{item, steady}
	_, err = svc.RefreshTrending(context.Background(), tenantCtx)
	require.NoError(t, err)

	breaking, err := svc.GetBreaking(context.Background(), tenantCtx, 0)
	require.NoError(t, err)

	require.Len(t, breaking, 1)
	assert.Equal(t, "a", breaking[0].ID)
	assert.Equal(t, entities.TrendRising, breaking[0].Trend)
}

func TestRefreshTrendingPropagatesSourceError(t *testing.T) {
	source := &fakeSource{err: errSourceDown}
	svc := newTestTrending(t, source)

	_, err := svc.RefreshTrending(context.Background(), newTestTenantContext())

	assert.Error(t, err)
}
