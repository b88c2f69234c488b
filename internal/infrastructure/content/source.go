// Package content provides the adapter to the upstream content source.
// This is the single normalization boundary: everything past it works
// with fully-typed items and never re-checks counters.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	entities "github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/content"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
)

// Source fetches content item snapshots for a query
type Source interface {
	FetchItems(ctx context.Context, query entities.Query) ([]entities.Item, error)
}

// HTTPSource talks to the platform's content REST API
type HTTPSource struct {
	baseURL string
	client  *http.Client
	logger  *logging.ChanneledLogger
}

// NewHTTPSource creates a content source client with a bounded timeout.
// The timeout doubles as the personalized-fetch failure boundary: a slow
// upstream is treated exactly like a failed one.
func NewHTTPSource(baseURL string, timeout time.Duration, logger *logging.ChanneledLogger) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// wireItem is the loosely-typed shape the upstream API returns. Counters
// are pointers because older feed versions omit them entirely.
type wireItem struct {
	ID           string  `json:"id"`
	Slug         string  `json:"slug"`
	Title        string  `json:"title"`
	CategorySlug string  `json:"categorySlug"`
	PublishedAt  *string `json:"publishedAt"`
	Views        *int    `json:"views"`
	Likes        *int    `json:"likes"`
	Comments     *int    `json:"comments"`
	Shares       *int    `json:"shares"`
}

type wireResponse struct {
	Items []wireItem `json:"items"`
}

// FetchItems requests one page of content and normalizes the response
func (s *HTTPSource) FetchItems(ctx context.Context, query entities.Query) ([]entities.Item, error) {
	requestURL, err := s.buildURL(query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build content request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("content fetch returned status %d", resp.StatusCode)
	}

	var payload wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode content response: %w", err)
	}

	items := s.normalize(payload.Items)

	if s.logger != nil {
		s.logger.Content().Debug("Content fetched",
			"requested", len(payload.Items),
			"normalized", len(items),
			"personalized", query.IsPersonalized(),
		)
	}

	return items, nil
}

func (s *HTTPSource) buildURL(query entities.Query) (string, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(query.Page))
	params.Set("limit", strconv.Itoa(query.Limit))

	if len(query.PreferredCategories) > 0 {
		params.Set("preferredCategories", strings.Join(query.PreferredCategories, ","))
	}
	if len(query.CategoryVisits) > 0 {
		visitsJSON, err := json.Marshal(query.CategoryVisits)
		if err != nil {
			return "", fmt.Errorf("failed to encode category visits: %w", err)
		}
		params.Set("categoryVisits", string(visitsJSON))
	}

	return s.baseURL + "?" + params.Encode(), nil
}

// normalize converts wire items into strict typed items: missing counters
// default to 0, and records without identity or timestamp are dropped.
func (s *HTTPSource) normalize(raw []wireItem) []entities.Item {
	items := make([]entities.Item, 0, len(raw))

	for _, w := range raw {
		if w.ID == "" || w.Slug == "" || w.CategorySlug == "" || w.PublishedAt == nil {
			continue
		}

		publishedAt, err := time.Parse(time.RFC3339, *w.PublishedAt)
		if err != nil {
			if s.logger != nil {
				s.logger.Content().Debug("Dropping item with unparseable timestamp", "id", w.ID)
			}
			continue
		}

		items = append(items, entities.Item{
			ID:           w.ID,
			Slug:         w.Slug,
			Title:        w.Title,
			CategorySlug: w.CategorySlug,
			PublishedAt:  publishedAt,
			Views:        counterValue(w.Views),
			Likes:        counterValue(w.Likes),
			Comments:     counterValue(w.Comments),
			Shares:       counterValue(w.Shares),
		})
	}

	return items
}

func counterValue(v *int) int {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}
