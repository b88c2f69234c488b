package preferences

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Set(ProfileKey("device-1"), []byte(`{"totalVisits":3}`)))

	value, err := store.Get(ProfileKey("device-1"))
	require.NoError(t, err)
	assert.Equal(t, `{"totalVisits":3}`, string(value))
}

func TestMemoryStoreAbsentKeyIsNilNil(t *testing.T) {
	store := NewMemoryStore()

	value, err := store.Get("profile:unknown")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestMemoryStoreRemove(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Set(ConsentKey("device-1"), []byte("true")))
	require.NoError(t, store.Remove(ConsentKey("device-1")))
	require.NoError(t, store.Remove(ConsentKey("device-1")), "removing an absent key is a no-op")

	value, err := store.Get(ConsentKey("device-1"))
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestKeyNamespaces(t *testing.T) {
	assert.Equal(t, "profile:device-1", ProfileKey("device-1"))
	assert.Equal(t, "consent:device-1", ConsentKey("device-1"))
}
