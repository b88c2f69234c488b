// Package content defines the content entities consumed and produced by the
// ranking engine. Items arrive as normalized snapshots from the upstream
// content source; the engine never mutates or persists them.
package content

import (
	"time"
)

// Trend classifies an item's score momentum between two scoring passes
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
)

// Priority is the display tier assigned to a category section
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Item is a fully-typed snapshot of one content item. Counters are
// non-negative and monotonically non-decreasing over the item's life;
// the content adapter is the only place untyped data is normalized.
type Item struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title,omitempty"`
	CategorySlug string    `json:"categorySlug"`
	PublishedAt  time.Time `json:"publishedAt"`
	Views        int       `json:"views"`
	Likes        int       `json:"likes"`
	Comments     int       `json:"comments"`
	Shares       int       `json:"shares"`
}

// AgeHours returns the item's age relative to now, in hours, floored at zero
func (i Item) AgeHours(now time.Time) float64 {
	age := now.Sub(i.PublishedAt).Hours()
	if age < 0 {
		return 0
	}
	return age
}

// ScoredItem is an Item plus its derived score and trend classification.
// Created fresh on every scoring pass; never persisted by the engine.
type ScoredItem struct {
	Item  `json:"item"`
	Score float64 `json:"score"`
	Trend Trend   `json:"trend"`
}

// Section is a category-grouped block of content items. Priority and
// SortScore are derived by the section prioritizer; sections are rebuilt
// on every personalization pass and never persisted.
type Section struct {
	CategorySlug string   `json:"categorySlug"`
	Title        string   `json:"title,omitempty"`
	OrderIndex   int      `json:"orderIndex"`
	Items        []Item   `json:"items"`
	Priority     Priority `json:"priority,omitempty"`
	SortScore    float64  `json:"sortScore,omitempty"`
}

// Source identifies how a resolved content payload was produced
type Source string

const (
	SourcePersonalized Source = "personalized"
	SourceGeneric      Source = "generic"
	SourceStale        Source = "stale"
)

// Resolved is the final payload handed to the rendering layer
type Resolved struct {
	Source     Source    `json:"source"`
	Items      []Item    `json:"items"`
	Sections   []Section `json:"sections"`
	ResolvedAt time.Time `json:"resolvedAt"`
}

// Query describes an outbound request to the content source
type Query struct {
	PreferredCategories []string       `json:"preferredCategories,omitempty"`
	CategoryVisits      map[string]int `json:"categoryVisits,omitempty"`
	Page                int            `json:"page"`
	Limit               int            `json:"limit"`
}

// IsPersonalized reports whether the query carries preference signal
func (q Query) IsPersonalized() bool {
	return len(q.PreferredCategories) > 0
}
