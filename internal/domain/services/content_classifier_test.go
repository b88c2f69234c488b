package services

import (
	"testing"

	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/profile"
	"github.com/stretchr/testify/assert"
)

func TestClassifyContentTypeDominantCategory(t *testing.T) {
	visits := map[string]int{"politics": 8, "sports": 2}

	got := ClassifyContentType(visits, 10, 0.25)

	assert.Equal(t, profile.ContentTypePolitics, got)
}

func TestClassifyContentTypeScatteredHistoryIsMixed(t *testing.T) {
	visits := map[string]int{"politics": 3, "sports": 3, "tech": 4}

	got := ClassifyContentType(visits, 10, 0.25)

	assert.Equal(t, profile.ContentTypeMixed, got)
}

func TestClassifyContentTypeEmptyHistoryIsMixed(t *testing.T) {
	assert.Equal(t, profile.ContentTypeMixed, ClassifyContentType(nil, 0, 0.25))
}

func TestClassifyContentTypeMatchesSlugSubstrings(t *testing.T) {
	visits := map[string]int{"county-kerry": 5, "north-county": 4, "tech": 1}

	got := ClassifyContentType(visits, 10, 0.25)

	assert.Equal(t, profile.ContentTypeCounties, got)
}

func TestClassifyContentTypeUnknownSlugsAreMixed(t *testing.T) {
	visits := map[string]int{"zzz": 5, "qqq": 5}

	got := ClassifyContentType(visits, 10, 0.25)

	assert.Equal(t, profile.ContentTypeMixed, got)
}

func TestClassifyContentTypeDeterministic(t *testing.T) {
	visits := map[string]int{"politics": 5, "sport": 5}

	first := ClassifyContentType(visits, 10, 0.25)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, ClassifyContentType(visits, 10, 0.25))
	}
}
