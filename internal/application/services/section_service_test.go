package services

import (
	"testing"
	"time"

	entities "github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSectionsGroupsByCategory(t *testing.T) {
	svc := NewSectionService(newTestLogger(t))
	now := time.Now()
	items := []entities.Item{
		{ID: "1", CategorySlug: "politics", PublishedAt: now},
		{ID: "2", CategorySlug: "sports", PublishedAt: now},
		{ID: "3", CategorySlug: "politics", PublishedAt: now},
	}

	sections := svc.BuildSections(items)

	require.Len(t, sections, 2)
	assert.Equal(t, "politics", sections[0].CategorySlug)
	assert.Len(t, sections[0].Items, 2)
	assert.Equal(t, "sports", sections[1].CategorySlug)
	assert.Equal(t, 0, sections[0].OrderIndex)
	assert.Equal(t, 1, sections[1].OrderIndex)
}

func TestBuildSectionsTitlesFromSlug(t *testing.T) {
	svc := NewSectionService(newTestLogger(t))

	sections := svc.BuildSections([]entities.Item{{ID: "1", CategorySlug: "local-news"}})

	require.Len(t, sections, 1)
	assert.Equal(t, "Local News", sections[0].Title)
}

func TestBuildSectionsDeterministic(t *testing.T) {
	svc := NewSectionService(newTestLogger(t))
	items := []entities.Item{
		{ID: "1", CategorySlug: "zebra"},
		{ID: "2", CategorySlug: "alpha"},
		{ID: "3", CategorySlug: "mango"},
	}

	first := svc.BuildSections(items)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, svc.BuildSections(items))
	}
}
