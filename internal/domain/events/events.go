// Package events defines the engagement events accepted from the
// reading surfaces.
package events

const (
	// TypeVisit is a category page visit
	TypeVisit = "visit"
	// TypeRead is an article read
	TypeRead = "read"
)

// Event is one engagement signal from a device
type Event struct {
	Type         string `json:"type" binding:"required"`
	CategorySlug string `json:"categorySlug" binding:"required"`
	ArticleSlug  string `json:"articleSlug,omitempty"`
}

// IsValid reports whether the event carries the fields its type requires
func (e Event) IsValid() bool {
	switch e.Type {
	case TypeVisit:
		return e.CategorySlug != ""
	case TypeRead:
		return e.CategorySlug != "" && e.ArticleSlug != ""
	default:
		return false
	}
}
