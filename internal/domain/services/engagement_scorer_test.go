package services

import (
	"testing"

	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/content"
	"github.com/stretchr/testify/assert"
)

func TestEngagementScoreWeightsCounters(t *testing.T) {
	item := content.Item{Views: 100, Likes: 10, Comments: 5, Shares: 2}

	// 100*1 + 10*5 + 5*10 + 2*15
	assert.Equal(t, 230.0, EngagementScore(item))
}

func TestEngagementScoreZeroItem(t *testing.T) {
	assert.Equal(t, 0.0, EngagementScore(content.Item{}))
}

func TestEngagementScoreIsPure(t *testing.T) {
	item := content.Item{Views: 7, Likes: 3, Comments: 1, Shares: 1}

	first := EngagementScore(item)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, EngagementScore(item))
	}
}

func TestDisplayScoreUsesViewsAndLikesOnly(t *testing.T) {
	item := content.Item{Views: 10, Likes: 10, Comments: 50, Shares: 50}

	// 10*0.7 + 10*0.3, comments and shares are ignored
	assert.InDelta(t, 10.0, DisplayScore(item), 1e-9)
}
