package profile

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateIsEmpty(t *testing.T) {
	state := NewState("device-1")

	assert.True(t, state.IsEmpty())
	assert.Equal(t, ContentTypeMixed, state.ContentType)
	assert.NotNil(t, state.Visits)
	assert.NotNil(t, state.ArticleReads)
}

func TestSortedVisitsOrdering(t *testing.T) {
	now := time.Now()
	state := NewState("device-1")
	state.Visits["sports"] = &VisitRecord{CategorySlug: "sports", Count: 5, LastVisit: now.Add(-time.Hour)}
	state.Visits["politics"] = &VisitRecord{CategorySlug: "politics", Count: 5, LastVisit: now}
	state.Visits["tech"] = &VisitRecord{CategorySlug: "tech", Count: 9, LastVisit: now.Add(-2 * time.Hour)}

	sorted := state.SortedVisits()
	require.Len(t, sorted, 3)

	// count wins first, then the more recent visit breaks the tie
	assert.Equal(t, "tech", sorted[0].CategorySlug)
	assert.Equal(t, "politics", sorted[1].CategorySlug)
	assert.Equal(t, "sports", sorted[2].CategorySlug)
}

func TestSortedVisitsSlugTiebreakIsDeterministic(t *testing.T) {
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	state := NewState("device-1")
	state.Visits["b"] = &VisitRecord{CategorySlug: "b", Count: 3, LastVisit: at}
	state.Visits["a"] = &VisitRecord{CategorySlug: "a", Count: 3, LastVisit: at}

	sorted := state.SortedVisits()

	assert.Equal(t, "a", sorted[0].CategorySlug)
	assert.Equal(t, "b", sorted[1].CategorySlug)
}

func TestCategoryRank(t *testing.T) {
	state := NewState("device-1")
	state.TopCategories = []string{"politics", "sports"}

	assert.Equal(t, 0, state.CategoryRank("politics"))
	assert.Equal(t, 1, state.CategoryRank("sports"))
	assert.Equal(t, -1, state.CategoryRank("weather"))
}

func TestStateJSONRoundTrip(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC)
	state := NewState("device-1")
	state.Visits["politics"] = &VisitRecord{CategorySlug: "politics", Count: 8, LastVisit: now}
	state.ArticleReads["budget-2026"] = 2
	state.TopCategories = []string{"politics"}
	state.ContentType = ContentTypePolitics
	state.TotalVisits = 8
	state.LastVisit = now

	raw, err := json.Marshal(state)
	require.NoError(t, err)

	restored := NewState("device-1")
	require.NoError(t, json.Unmarshal(raw, restored))

	assert.Equal(t, state.TopCategories, restored.TopCategories)
	assert.Equal(t, state.ContentType, restored.ContentType)
	assert.Equal(t, state.TotalVisits, restored.TotalVisits)
	assert.Equal(t, 8, restored.CategoryVisitCount("politics"))
	assert.Equal(t, 2, restored.ArticleReads["budget-2026"])
}
