package services

import (
	"context"
	"testing"
	"time"

	entities "github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/content"
	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/profile"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/performance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []entities.Item {
	now := time.Now()
	return []entities.Item{
		{ID: "1", Slug: "budget-2026", CategorySlug: "politics", PublishedAt: now.Add(-time.Hour), Views: 100},
		{ID: "2", Slug: "county-final", CategorySlug: "sports", PublishedAt: now.Add(-2 * time.Hour), Views: 50},
	}
}

func newTestPersonalization(t *testing.T, source *fakeSource) (*PersonalizationService, *PreferenceService) {
	t.Helper()
	prefSvc, _, _ := newTestPreferenceService(t)
	sectionSvc := NewSectionService(newTestLogger(t))
	svc := NewPersonalizationService(source, prefSvc, sectionSvc, newTestLogger(t), performance.NewTracker(performance.DefaultTrackerConfig()))
	return svc, prefSvc
}

func buildSignal(t *testing.T, prefSvc *PreferenceService) {
	t.Helper()
	tenantCtx := newTestTenantContext()
	require.NoError(t, prefSvc.SetConsent(tenantCtx, "device-1", true))
	for i := 0; i < 5; i++ {
		_, err := prefSvc.RecordVisit(tenantCtx, "device-1", "politics")
		require.NoError(t, err)
	}
}

func TestBuildRequestRequiresConsentAndSignal(t *testing.T) {
	svc, _ := newTestPersonalization(t, &fakeSource{})

	state := profile.NewState("device-1")
	state.TopCategories = []string{"politics"}

	assert.True(t, svc.BuildRequest(state, true).IsPersonalized())
	assert.False(t, svc.BuildRequest(state, false).IsPersonalized(), "consent gate")
	assert.False(t, svc.BuildRequest(profile.NewState("device-1"), true).IsPersonalized(), "no signal")
}

func TestResolveContentWithoutConsentIsGeneric(t *testing.T) {
	source := &fakeSource{items: testItems()}
	svc, _ := newTestPersonalization(t, source)

	resolved, err := svc.ResolveContent(context.Background(), newTestTenantContext(), "device-1")
	require.NoError(t, err)

	assert.Equal(t, entities.SourceGeneric, resolved.Source)
	require.Len(t, source.lastQueries, 1)
	assert.False(t, source.lastQueries[0].IsPersonalized())
}

func TestResolveContentPersonalized(t *testing.T) {
	source := &fakeSource{items: testItems()}
	svc, prefSvc := newTestPersonalization(t, source)
	buildSignal(t, prefSvc)

	resolved, err := svc.ResolveContent(context.Background(), newTestTenantContext(), "device-1")
	require.NoError(t, err)

	assert.Equal(t, entities.SourcePersonalized, resolved.Source)
	require.NotEmpty(t, source.lastQueries)
	query := source.lastQueries[0]
	assert.Equal(t, []string{"politics"}, query.PreferredCategories)
	assert.Equal(t, 5, query.CategoryVisits["politics"])
	assert.NotEmpty(t, resolved.Sections)
}

func TestResolveContentPersonalizedFailureFallsBackToGeneric(t *testing.T) {
	source := &fakeSource{
		items: testItems(),
		err:   errSourceDown,
		failOnlyFor: func(query entities.Query) bool {
			return query.IsPersonalized()
		},
	}
	svc, prefSvc := newTestPersonalization(t, source)
	buildSignal(t, prefSvc)

	resolved, err := svc.ResolveContent(context.Background(), newTestTenantContext(), "device-1")
	require.NoError(t, err)

	assert.Equal(t, entities.SourceGeneric, resolved.Source)
	require.Len(t, source.lastQueries, 2, "personalized attempt then generic fallback")
	assert.True(t, source.lastQueries[0].IsPersonalized())
	assert.False(t, source.lastQueries[1].IsPersonalized())
}

func TestResolveContentServesStaleWhenSourceIsDown(t *testing.T) {
	source := &fakeSource{items: testItems()}
	svc, _ := newTestPersonalization(t, source)
	tenantCtx := newTestTenantContext()

	// prime the cache with a good payload
	first, err := svc.ResolveContent(context.Background(), tenantCtx, "device-1")
	require.NoError(t, err)
	require.Equal(t, entities.SourceGeneric, first.Source)

	source.err = errSourceDown
	resolved, err := svc.ResolveContent(context.Background(), tenantCtx, "device-1")
	require.NoError(t, err)

	assert.Equal(t, entities.SourceStale, resolved.Source)
	assert.Equal(t, first.Items, resolved.Items)
}

func TestResolveContentErrorsWithNothingCached(t *testing.T) {
	source := &fakeSource{err: errSourceDown}
	svc, _ := newTestPersonalization(t, source)

	_, err := svc.ResolveContent(context.Background(), newTestTenantContext(), "device-1")

	assert.Error(t, err)
}

func TestResolveContentHonorsCancellation(t *testing.T) {
	source := &fakeSource{err: context.Canceled}
	svc, _ := newTestPersonalization(t, source)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ResolveContent(ctx, newTestTenantContext(), "device-1")

	assert.Error(t, err)
}
