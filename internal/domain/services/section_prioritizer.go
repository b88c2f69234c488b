package services

import (
	"sort"

	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/content"
	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/profile"
)

// Sort-score bands. Ranked sections sort into the low band by their rank;
// everything else falls into the declared-order band, so favored
// categories always surface first.
const (
	rankBandStep      = 10.0
	declaredOrderBase = 1000.0
	mediumVisitsFloor = 10
	mediumRankCeiling = 2
)

// PrioritizeSections assigns a priority tier and sort score to every
// section based on the profile's favored categories, orders the sections
// by sort score ascending, and reorders the items inside each section by
// display score descending. All sorting is stable, so identical inputs
// always produce identical output.
func PrioritizeSections(sections []content.Section, state *profile.State) []content.Section {
	prioritized := make([]content.Section, len(sections))
	copy(prioritized, sections)

	for i := range prioritized {
		section := &prioritized[i]

		rank := -1
		visits := 0
		if state != nil {
			rank = state.CategoryRank(section.CategorySlug)
			visits = state.CategoryVisitCount(section.CategorySlug)
		}

		switch {
		case rank == 0:
			section.Priority = content.PriorityHigh
		case (rank >= 1 && rank <= mediumRankCeiling) || visits > mediumVisitsFloor:
			section.Priority = content.PriorityMedium
		default:
			section.Priority = content.PriorityLow
		}

		if rank >= 0 {
			section.SortScore = float64(rank) * rankBandStep
		} else {
			section.SortScore = declaredOrderBase + float64(section.OrderIndex)*rankBandStep
		}

		section.Items = sortItemsByDisplayScore(section.Items)
	}

	sort.SliceStable(prioritized, func(i, j int) bool {
		return prioritized[i].SortScore < prioritized[j].SortScore
	})

	return prioritized
}

func sortItemsByDisplayScore(items []content.Item) []content.Item {
	ordered := make([]content.Item, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return DisplayScore(ordered[i]) > DisplayScore(ordered[j])
	})
	return ordered
}
