package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/profile"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/performance"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/persistence/preferences"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grantConsent(t *testing.T, svc *PreferenceService) {
	t.Helper()
	require.NoError(t, svc.SetConsent(newTestTenantContext(), "device-1", true))
}

func TestRecordVisitWithoutConsentIsInert(t *testing.T) {
	svc, store, tenantCtx := newTestPreferenceService(t)

	state, err := svc.RecordVisit(tenantCtx, "device-1", "politics")
	require.NoError(t, err)

	assert.True(t, state.IsEmpty())

	raw, err := store.Get(preferences.ProfileKey("device-1"))
	require.NoError(t, err)
	assert.Nil(t, raw, "no profile may be persisted without consent")
}

func TestRecordVisitAccumulatesAndDerives(t *testing.T) {
	svc, _, tenantCtx := newTestPreferenceService(t)
	grantConsent(t, svc)

	for i := 0; i < 8; i++ {
		_, err := svc.RecordVisit(tenantCtx, "device-1", "politics")
		require.NoError(t, err)
	}
	state, err := svc.RecordVisit(tenantCtx, "device-1", "sports")
	require.NoError(t, err)

	assert.Equal(t, 9, state.TotalVisits)
	assert.Equal(t, 8, state.CategoryVisitCount("politics"))
	assert.Equal(t, []string{"politics", "sports"}, state.TopCategories)
	assert.Equal(t, profile.ContentTypePolitics, state.ContentType)
}

func TestRecordReadTracksArticleCounts(t *testing.T) {
	svc, _, tenantCtx := newTestPreferenceService(t)
	grantConsent(t, svc)

	_, err := svc.RecordRead(tenantCtx, "device-1", "politics", "budget-2026")
	require.NoError(t, err)
	state, err := svc.RecordRead(tenantCtx, "device-1", "politics", "budget-2026")
	require.NoError(t, err)

	assert.Equal(t, 2, state.ArticleReads["budget-2026"])
	assert.Equal(t, 2, state.CategoryVisitCount("politics"))
}

func TestRetentionCapSparesFreshIncrement(t *testing.T) {
	svc, _, tenantCtx := newTestPreferenceService(t)
	grantConsent(t, svc)

	// fill to the cap with progressively heavier categories
	for i := 0; i < 20; i++ {
		slug := fmt.Sprintf("category-%02d", i)
		for j := 0; j <= i; j++ {
			_, err := svc.RecordVisit(tenantCtx, "device-1", slug)
			require.NoError(t, err)
		}
	}

	// the 21st category has the lowest count but was just incremented
	state, err := svc.RecordVisit(tenantCtx, "device-1", "newcomer")
	require.NoError(t, err)

	assert.Len(t, state.Visits, 20)
	assert.Contains(t, state.Visits, "newcomer")
	assert.NotContains(t, state.Visits, "category-00", "the lightest old record is evicted instead")
}

func TestTopCategoriesCappedAtFive(t *testing.T) {
	svc, _, tenantCtx := newTestPreferenceService(t)
	grantConsent(t, svc)

	var state *profile.State
	for i := 0; i < 8; i++ {
		slug := fmt.Sprintf("category-%d", i)
		for j := 0; j <= i; j++ {
			var err error
			state, err = svc.RecordVisit(tenantCtx, "device-1", slug)
			require.NoError(t, err)
		}
	}

	require.Len(t, state.TopCategories, 5)
	assert.Equal(t, "category-7", state.TopCategories[0])
}

func TestProfileRoundTripThroughStore(t *testing.T) {
	svc, store, tenantCtx := newTestPreferenceService(t)
	grantConsent(t, svc)

	for i := 0; i < 5; i++ {
		_, err := svc.RecordVisit(tenantCtx, "device-1", "politics")
		require.NoError(t, err)
	}

	// a second service sharing only the store must see the same profile
	fresh := NewPreferenceService(newTestCacheManager(t), newTestLogger(t), performance.NewTracker(performance.DefaultTrackerConfig()))
	fresh.storesMu.Lock()
	fresh.stores["t1"] = store
	fresh.storesMu.Unlock()

	restored := fresh.GetProfile(tenantCtx, "device-1")

	assert.Equal(t, []string{"politics"}, restored.TopCategories)
	assert.Equal(t, profile.ContentTypePolitics, restored.ContentType)
	assert.Equal(t, 5, restored.TotalVisits)
}

func TestResetClearsProfileAndIsIdempotent(t *testing.T) {
	svc, store, tenantCtx := newTestPreferenceService(t)
	grantConsent(t, svc)

	_, err := svc.RecordVisit(tenantCtx, "device-1", "politics")
	require.NoError(t, err)

	require.NoError(t, svc.Reset(tenantCtx, "device-1"))
	require.NoError(t, svc.Reset(tenantCtx, "device-1"))

	raw, err := store.Get(preferences.ProfileKey("device-1"))
	require.NoError(t, err)
	assert.Nil(t, raw)
	assert.True(t, svc.GetProfile(tenantCtx, "device-1").IsEmpty())
}

func TestRevokingConsentClearsProfile(t *testing.T) {
	svc, _, tenantCtx := newTestPreferenceService(t)
	grantConsent(t, svc)

	_, err := svc.RecordVisit(tenantCtx, "device-1", "politics")
	require.NoError(t, err)

	require.NoError(t, svc.SetConsent(tenantCtx, "device-1", false))

	assert.True(t, svc.GetProfile(tenantCtx, "device-1").IsEmpty())
}

// faultyStore fails every operation, standing in for a broken tenant DB
type faultyStore struct{}

func (faultyStore) Get(string) ([]byte, error) { return nil, errors.New("store down") }
func (faultyStore) Set(string, []byte) error   { return errors.New("store down") }
func (faultyStore) Remove(string) error        { return errors.New("store down") }

func TestFaultyStoreDegradesGracefully(t *testing.T) {
	svc := NewPreferenceService(newTestCacheManager(t), newTestLogger(t), performance.NewTracker(performance.DefaultTrackerConfig()))
	svc.storesMu.Lock()
	svc.stores["t1"] = faultyStore{}
	svc.storesMu.Unlock()
	tenantCtx := newTestTenantContext()

	// unreadable consent flag counts as no consent
	state, err := svc.RecordVisit(tenantCtx, "device-1", "politics")
	require.NoError(t, err)
	assert.True(t, state.IsEmpty())
	assert.False(t, svc.HasConsent(tenantCtx, "device-1"))
}
