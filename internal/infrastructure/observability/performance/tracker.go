// Package performance provides performance tracking and monitoring capabilities
// for PulseWire operations with multi-tenant support.
package performance

import (
	"fmt"
	"sync"
	"time"
)

// Tracker manages performance markers and provides metrics aggregation
type Tracker struct {
	markers map[string]*Marker // Active and completed markers by unique ID
	order   []string           // Marker IDs in creation order, for bounded retention
	mu      sync.RWMutex       // Protects concurrent access
	started time.Time          // When tracking started
	config  *TrackerConfig     // Tracker configuration
	counter uint64             // Monotonic marker counter
}

// TrackerConfig contains configuration options for the performance tracker
type TrackerConfig struct {
	MaxMarkers int `json:"maxMarkers"` // Maximum number of markers to retain
}

// DefaultTrackerConfig returns a sensible default configuration
func DefaultTrackerConfig() *TrackerConfig {
	return &TrackerConfig{
		MaxMarkers: 10000,
	}
}

// NewTracker creates a new performance tracker with the given configuration
func NewTracker(config *TrackerConfig) *Tracker {
	if config == nil {
		config = DefaultTrackerConfig()
	}

	return &Tracker{
		markers: make(map[string]*Marker),
		started: time.Now(),
		config:  config,
	}
}

// StartOperation begins tracking a new operation and returns its marker
func (t *Tracker) StartOperation(operation, tenantID string) *Marker {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.counter++
	id := fmt.Sprintf("%s:%s:%d", tenantID, operation, t.counter)

	marker := &Marker{
		Operation: operation,
		TenantID:  tenantID,
		StartTime: time.Now(),
		Metadata:  make(map[string]any),
	}

	t.markers[id] = marker
	t.order = append(t.order, id)

	// Drop the oldest markers once the retention cap is reached
	if len(t.order) > t.config.MaxMarkers {
		overflow := len(t.order) - t.config.MaxMarkers
		for _, staleID := range t.order[:overflow] {
			delete(t.markers, staleID)
		}
		t.order = t.order[overflow:]
	}

	return marker
}

// OperationStats summarizes completed markers for one operation name
type OperationStats struct {
	Operation    string        `json:"operation"`
	Count        int           `json:"count"`
	Failures     int           `json:"failures"`
	TotalTime    time.Duration `json:"totalTime"`
	AverageTime  time.Duration `json:"averageTime"`
	SlowestTime  time.Duration `json:"slowestTime"`
	LastObserved time.Time     `json:"lastObserved"`
}

// GetOperationStats aggregates completed markers grouped by operation name
func (t *Tracker) GetOperationStats() map[string]*OperationStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stats := make(map[string]*OperationStats)
	for _, marker := range t.markers {
		if !marker.Completed {
			continue
		}

		s, exists := stats[marker.Operation]
		if !exists {
			s = &OperationStats{Operation: marker.Operation}
			stats[marker.Operation] = s
		}

		s.Count++
		if !marker.Success {
			s.Failures++
		}
		s.TotalTime += marker.Duration
		if marker.Duration > s.SlowestTime {
			s.SlowestTime = marker.Duration
		}
		if marker.EndTime.After(s.LastObserved) {
			s.LastObserved = marker.EndTime
		}
	}

	for _, s := range stats {
		if s.Count > 0 {
			s.AverageTime = s.TotalTime / time.Duration(s.Count)
		}
	}

	return stats
}

// Uptime reports how long this tracker has been running
func (t *Tracker) Uptime() time.Duration {
	return time.Since(t.started)
}
