package services

import (
	"sort"
	"strings"

	entities "github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/content"
	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/profile"
	domainServices "github.com/PulseWireMedia/pulsewire-go/internal/domain/services"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
)

// SectionService groups flat content items into category sections and
// orders them against a device's preference profile.
type SectionService struct {
	logger *logging.ChanneledLogger
}

// NewSectionService creates a new section service
func NewSectionService(logger *logging.ChanneledLogger) *SectionService {
	return &SectionService{logger: logger}
}

// BuildSections groups items by category slug. Declared order is
// alphabetical by slug so identical item sets always produce identical
// sections.
func (s *SectionService) BuildSections(items []entities.Item) []entities.Section {
	grouped := make(map[string][]entities.Item)
	for _, item := range items {
		grouped[item.CategorySlug] = append(grouped[item.CategorySlug], item)
	}

	slugs := make([]string, 0, len(grouped))
	for slug := range grouped {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	sections := make([]entities.Section, 0, len(slugs))
	for i, slug := range slugs {
		sections = append(sections, entities.Section{
			CategorySlug: slug,
			Title:        titleFromSlug(slug),
			OrderIndex:   i,
			Items:        grouped[slug],
		})
	}
	return sections
}

// Prioritize assigns display tiers and sort order to the sections for
// one device. Deterministic for identical inputs.
func (s *SectionService) Prioritize(sections []entities.Section, state *profile.State) []entities.Section {
	return domainServices.PrioritizeSections(sections, state)
}

// titleFromSlug renders "local-news" as "Local News" for sections the
// upstream left untitled.
func titleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
