package services

import (
	"testing"
	"time"

	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/content"
	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stateWithTopCategories(slugs ...string) *profile.State {
	state := profile.NewState("device-1")
	now := time.Now()
	for i, slug := range slugs {
		count := 20 - i
		state.Visits[slug] = &profile.VisitRecord{CategorySlug: slug, Count: count, LastVisit: now}
		state.TotalVisits += count
	}
	state.TopCategories = slugs
	return state
}

func TestPrioritizeSectionsTiers(t *testing.T) {
	state := stateWithTopCategories("politics", "sports", "business")
	sections := []content.Section{
		{CategorySlug: "weather", OrderIndex: 0},
		{CategorySlug: "politics", OrderIndex: 1},
		{CategorySlug: "sports", OrderIndex: 2},
		{CategorySlug: "business", OrderIndex: 3},
	}

	got := PrioritizeSections(sections, state)
	require.Len(t, got, 4)

	// favored categories rise above declared order
	assert.Equal(t, "politics", got[0].CategorySlug)
	assert.Equal(t, content.PriorityHigh, got[0].Priority)
	assert.Equal(t, "sports", got[1].CategorySlug)
	assert.Equal(t, content.PriorityMedium, got[1].Priority)
	assert.Equal(t, "business", got[2].CategorySlug)
	assert.Equal(t, content.PriorityMedium, got[2].Priority)
	assert.Equal(t, "weather", got[3].CategorySlug)
	assert.Equal(t, content.PriorityLow, got[3].Priority)
}

func TestPrioritizeSectionsHeavyVisitsEarnMedium(t *testing.T) {
	state := profile.NewState("device-1")
	state.Visits["weather"] = &profile.VisitRecord{CategorySlug: "weather", Count: 11, LastVisit: time.Now()}
	state.TotalVisits = 11
	// not in TopCategories, but cumulative visits cross the floor

	got := PrioritizeSections([]content.Section{{CategorySlug: "weather"}}, state)

	require.Len(t, got, 1)
	assert.Equal(t, content.PriorityMedium, got[0].Priority)
}

func TestPrioritizeSectionsNilProfileUsesDeclaredOrder(t *testing.T) {
	sections := []content.Section{
		{CategorySlug: "b", OrderIndex: 1},
		{CategorySlug: "a", OrderIndex: 0},
	}

	got := PrioritizeSections(sections, nil)

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].CategorySlug)
	assert.Equal(t, content.PriorityLow, got[0].Priority)
	assert.Equal(t, content.PriorityLow, got[1].Priority)
}

func TestPrioritizeSectionsOrdersItemsByDisplayScore(t *testing.T) {
	sections := []content.Section{{
		CategorySlug: "news",
		Items: []content.Item{
			{ID: "low", Views: 1},
			{ID: "high", Views: 100},
			{ID: "mid", Views: 50},
		},
	}}

	got := PrioritizeSections(sections, nil)

	require.Len(t, got, 1)
	ids := []string{got[0].Items[0].ID, got[0].Items[1].ID, got[0].Items[2].ID}
	assert.Equal(t, []string{"high", "mid", "low"}, ids)
}

func TestPrioritizeSectionsDoesNotMutateInput(t *testing.T) {
	sections := []content.Section{
		{CategorySlug: "b", OrderIndex: 1},
		{CategorySlug: "a", OrderIndex: 0},
	}

	_ = PrioritizeSections(sections, nil)

	assert.Equal(t, "b", sections[0].CategorySlug)
	assert.Equal(t, content.Priority(""), sections[0].Priority)
}

func TestPrioritizeSectionsDeterministic(t *testing.T) {
	state := stateWithTopCategories("politics")
	sections := []content.Section{
		{CategorySlug: "a", OrderIndex: 0},
		{CategorySlug: "politics", OrderIndex: 1},
		{CategorySlug: "b", OrderIndex: 2},
	}

	first := PrioritizeSections(sections, state)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, PrioritizeSections(sections, state))
	}
}
