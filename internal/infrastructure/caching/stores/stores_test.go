package stores

import (
	"testing"
	"time"

	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/content"
	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankingsStoreHistoryRoundTrip(t *testing.T) {
	store := NewRankingsStore(nil)
	store.InitializeTenant("t1")

	store.ReplaceScoreHistory("t1", map[string]float64{"a": 100, "b": 50})

	history, ok := store.GetScoreHistory("t1")
	require.True(t, ok)
	assert.Equal(t, 100.0, history["a"])

	// returned map is a copy, mutations must not leak back
	history["a"] = 999
	again, _ := store.GetScoreHistory("t1")
	assert.Equal(t, 100.0, again["a"])
}

func TestRankingsStoreUnknownTenant(t *testing.T) {
	store := NewRankingsStore(nil)

	_, ok := store.GetScoreHistory("ghost")
	assert.False(t, ok)

	_, _, found := store.GetSnapshot("ghost")
	assert.False(t, found)
}

func TestRankingsStoreSnapshot(t *testing.T) {
	store := NewRankingsStore(nil)
	store.InitializeTenant("t1")

	_, _, found := store.GetSnapshot("t1")
	assert.False(t, found, "no snapshot before the first pass")

	store.SetSnapshot("t1", []content.ScoredItem{{Score: 10, Trend: content.TrendStable}})

	snapshot, refreshedAt, found := store.GetSnapshot("t1")
	require.True(t, found)
	require.Len(t, snapshot, 1)
	assert.WithinDuration(t, time.Now().UTC(), refreshedAt, time.Minute)
}

func TestProfilesStoreLifecycle(t *testing.T) {
	store := NewProfilesStore(nil)
	store.InitializeTenant("t1")

	state := profile.NewState("device-1")
	store.SetProfile("t1", state)

	got, found := store.GetProfile("t1", "device-1")
	require.True(t, found)
	assert.Equal(t, "device-1", got.DeviceID)
	assert.Equal(t, 1, store.ProfileCount("t1"))

	store.RemoveProfile("t1", "device-1")
	_, found = store.GetProfile("t1", "device-1")
	assert.False(t, found)
}

func TestProfilesStoreEvictsIdle(t *testing.T) {
	store := NewProfilesStore(nil)
	store.InitializeTenant("t1")

	store.SetProfile("t1", profile.NewState("stale-device"))

	// backdate the access time past the idle window
	cache, ok := store.GetTenantCache("t1")
	require.True(t, ok)
	cache.Mu.Lock()
	cache.LastAccessed["stale-device"] = time.Now().UTC().Add(-2 * time.Hour)
	cache.Mu.Unlock()

	store.SetProfile("t1", profile.NewState("fresh-device"))

	evicted := store.EvictIdleProfiles("t1", time.Hour)

	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, store.ProfileCount("t1"))
	_, found := store.GetProfile("t1", "fresh-device")
	assert.True(t, found)
}
