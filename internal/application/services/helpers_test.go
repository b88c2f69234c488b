package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	entities "github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/content"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/caching/manager"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/performance"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/persistence/preferences"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/tenant"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToFile:    false,
		OutputToConsole: true,
		DefaultLevel:    slog.LevelError,
	})
	require.NoError(t, err)
	return logger
}

func newTestCacheManager(t *testing.T) *manager.Manager {
	t.Helper()
	cm := manager.NewManager(newTestLogger(t))
	cm.InitializeTenant("t1")
	return cm
}

func newTestTenantContext() *tenant.Context {
	return &tenant.Context{TenantID: "t1", Status: "active"}
}

// seedMemoryStore injects an in-memory preference store so tests never
// touch a tenant database.
func seedMemoryStore(svc *PreferenceService, tenantID string) *preferences.MemoryStore {
	store := preferences.NewMemoryStore()
	svc.storesMu.Lock()
	svc.stores[tenantID] = store
	svc.storesMu.Unlock()
	return store
}

func newTestPreferenceService(t *testing.T) (*PreferenceService, *preferences.MemoryStore, *tenant.Context) {
	t.Helper()
	svc := NewPreferenceService(newTestCacheManager(t), newTestLogger(t), performance.NewTracker(performance.DefaultTrackerConfig()))
	store := seedMemoryStore(svc, "t1")
	return svc, store, newTestTenantContext()
}

// fakeSource is a scriptable content source for service tests
type fakeSource struct {
	items       []entities.Item
	err         error
	failOnlyFor func(query entities.Query) bool
	lastQueries []entities.Query
}

var errSourceDown = errors.New("content source unavailable")

func (f *fakeSource) FetchItems(ctx context.Context, query entities.Query) ([]entities.Item, error) {
	f.lastQueries = append(f.lastQueries, query)
	if f.err != nil {
		if f.failOnlyFor == nil || f.failOnlyFor(query) {
			return nil, f.err
		}
	}
	return f.items, nil
}
