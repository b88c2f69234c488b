package types

import (
	"sync"
	"time"

	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/profile"
)

// TenantProfileCache holds the hot preference profiles for a single
// tenant, keyed by device ID. The preference store remains the source of
// truth; this cache only avoids a read per event.
type TenantProfileCache struct {
	Profiles     map[string]*profile.State
	LastAccessed map[string]time.Time

	LastLoaded time.Time
	Mu         sync.RWMutex
}
