package services

import (
	"time"

	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/content"
)

// minAgeHours guards the velocity division for items published moments ago
const minAgeHours = 0.1

// TrendClassifier combines engagement scoring and recency decay into a
// per-item score and classifies momentum against the previous observation.
// The classifier itself is stateless; the caller owns the previous-score
// history and its eviction.
type TrendClassifier struct {
	velocityThreshold float64 // engagement-per-hour above which the bonus applies
	velocityBonus     float64 // multiplier rewarding fast-accelerating content
	deltaRatio        float64 // fraction of score the delta must exceed to leave stable
}

// NewTrendClassifier creates a classifier with the given momentum policy
func NewTrendClassifier(velocityThreshold, velocityBonus, deltaRatio float64) *TrendClassifier {
	return &TrendClassifier{
		velocityThreshold: velocityThreshold,
		velocityBonus:     velocityBonus,
		deltaRatio:        deltaRatio,
	}
}

// Score computes the recency-weighted engagement score for one item,
// applying the velocity bonus when engagement-per-hour crosses the
// threshold.
func (tc *TrendClassifier) Score(item content.Item, now time.Time) float64 {
	ageHours := item.AgeHours(now)
	score := EngagementScore(item) * DecayFactor(ageHours)

	divisor := ageHours
	if divisor < minAgeHours {
		divisor = minAgeHours
	}
	if score/divisor > tc.velocityThreshold {
		score *= tc.velocityBonus
	}

	return score
}

// Classify scores one item and tags its trend against the previous score.
// An item observed for the first time is always stable.
func (tc *TrendClassifier) Classify(item content.Item, previous *float64, now time.Time) content.ScoredItem {
	score := tc.Score(item, now)

	trend := content.TrendStable
	if previous != nil {
		delta := score - *previous
		switch {
		case delta > tc.deltaRatio*score:
			trend = content.TrendRising
		case delta < -tc.deltaRatio*score:
			trend = content.TrendFalling
		}
	}

	return content.ScoredItem{Item: item, Score: score, Trend: trend}
}

// ClassifyAll scores the active item set against the supplied history and
// returns the scored items together with the replacement history. The new
// history contains only items present in this pass, so entries for items
// that dropped out of the active set are evicted.
func (tc *TrendClassifier) ClassifyAll(items []content.Item, history map[string]float64, now time.Time) ([]content.ScoredItem, map[string]float64) {
	scored := make([]content.ScoredItem, 0, len(items))
	next := make(map[string]float64, len(items))

	for _, item := range items {
		var previous *float64
		if prev, seen := history[item.ID]; seen {
			previous = &prev
		}

		result := tc.Classify(item, previous, now)
		scored = append(scored, result)
		next[item.ID] = result.Score
	}

	return scored, next
}
