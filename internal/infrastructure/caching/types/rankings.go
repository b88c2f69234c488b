// Package types defines the cache payloads held per tenant.
package types

import (
	"sync"
	"time"

	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/content"
)

// TenantRankingCache holds the ranking state for a single tenant: the
// previous-score history the trend classifier compares against, and the
// most recent scored snapshot.
type TenantRankingCache struct {
	// ScoreHistory maps item ID to the score observed on the previous
	// scoring pass. Replaced wholesale after each pass, which evicts
	// entries for items that left the active set.
	ScoreHistory map[string]float64

	// LastSnapshot is the scored output of the most recent pass
	LastSnapshot []content.ScoredItem

	LastRefreshed time.Time
	Mu            sync.RWMutex
}
