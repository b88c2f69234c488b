// Package profile defines the per-device preference profile entities.
// A profile is exclusively owned by the visiting device and is never
// merged across devices.
package profile

import (
	"sort"
	"time"
)

// ContentType is the single-label bucket summarizing a profile's
// dominant interest area
type ContentType string

const (
	ContentTypeBreaking      ContentType = "breaking"
	ContentTypePolitics      ContentType = "politics"
	ContentTypeBusiness      ContentType = "business"
	ContentTypeSports        ContentType = "sports"
	ContentTypeEntertainment ContentType = "entertainment"
	ContentTypeTech          ContentType = "tech"
	ContentTypeLifestyle     ContentType = "lifestyle"
	ContentTypeOpinion       ContentType = "opinion"
	ContentTypeCounties      ContentType = "counties"
	ContentTypeMixed         ContentType = "mixed"
)

// VisitRecord tracks cumulative visits to one category
type VisitRecord struct {
	CategorySlug string    `json:"categorySlug"`
	Count        int       `json:"count"`
	LastVisit    time.Time `json:"lastVisit"`
}

// State is the serializable per-device preference profile. Visits is
// keyed by category slug; TopCategories and ContentType are derived on
// every update and carried in the serialized form so a reload reproduces
// them exactly.
type State struct {
	DeviceID      string                  `json:"deviceId"`
	Visits        map[string]*VisitRecord `json:"visits"`
	ArticleReads  map[string]int          `json:"articleReads,omitempty"`
	TopCategories []string                `json:"topCategories"`
	ContentType   ContentType             `json:"contentType"`
	TotalVisits   int                     `json:"totalVisits"`
	LastVisit     time.Time               `json:"lastVisit"`
}

// NewState creates an empty profile for a device
func NewState(deviceID string) *State {
	return &State{
		DeviceID:     deviceID,
		Visits:       make(map[string]*VisitRecord),
		ArticleReads: make(map[string]int),
		ContentType:  ContentTypeMixed,
	}
}

// IsEmpty reports whether the profile carries any visit signal
func (s *State) IsEmpty() bool {
	return s.TotalVisits == 0
}

// SortedVisits returns all visit records sorted by count descending,
// ties broken by most recent last visit, then by slug for determinism.
func (s *State) SortedVisits() []*VisitRecord {
	records := make([]*VisitRecord, 0, len(s.Visits))
	for _, rec := range s.Visits {
		records = append(records, rec)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Count != records[j].Count {
			return records[i].Count > records[j].Count
		}
		if !records[i].LastVisit.Equal(records[j].LastVisit) {
			return records[i].LastVisit.After(records[j].LastVisit)
		}
		return records[i].CategorySlug < records[j].CategorySlug
	})
	return records
}

// CategoryVisitCount returns the cumulative visit count for one category
func (s *State) CategoryVisitCount(categorySlug string) int {
	if rec, exists := s.Visits[categorySlug]; exists {
		return rec.Count
	}
	return 0
}

// CategoryRank returns the 0-based rank of a category inside
// TopCategories, or -1 when the category is not favored.
func (s *State) CategoryRank(categorySlug string) int {
	for i, slug := range s.TopCategories {
		if slug == categorySlug {
			return i
		}
	}
	return -1
}

// VisitCounts returns a plain map of category slug to cumulative count,
// the shape the content source expects on personalized queries.
func (s *State) VisitCounts() map[string]int {
	counts := make(map[string]int, len(s.Visits))
	for slug, rec := range s.Visits {
		counts[slug] = rec.Count
	}
	return counts
}
