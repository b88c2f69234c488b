// Package services provides the pure ranking engine: engagement scoring,
// recency decay, trend classification, and content-type classification.
// Nothing in this package touches infrastructure; every function is
// deterministic and side-effect-free.
package services

import (
	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/content"
)

// Canonical engagement weights. Comments and shares carry far more intent
// than raw views, so they dominate the weighted sum.
const (
	WeightViews    = 1.0
	WeightLikes    = 5.0
	WeightComments = 10.0
	WeightShares   = 15.0
)

// Display-ordering weights used only for sorting items inside a section.
// This is intentionally a simpler score than EngagementScore and the two
// must not be conflated: one ranks trending items, one orders a section.
const (
	DisplayWeightViews = 0.7
	DisplayWeightLikes = 0.3
)

// EngagementScore maps an item's raw counters into a single engagement
// magnitude. An all-zero item scores 0.
func EngagementScore(item content.Item) float64 {
	return float64(item.Views)*WeightViews +
		float64(item.Likes)*WeightLikes +
		float64(item.Comments)*WeightComments +
		float64(item.Shares)*WeightShares
}

// DisplayScore orders items within an already-prioritized section
func DisplayScore(item content.Item) float64 {
	return float64(item.Views)*DisplayWeightViews + float64(item.Likes)*DisplayWeightLikes
}
