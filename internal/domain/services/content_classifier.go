package services

import (
	"strings"

	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/profile"
)

// contentTypeBucket pairs a bucket's keyword list with its specificity
// weight. Broad buckets whose keywords match loosely (tech, lifestyle,
// entertainment) are discounted so a thin, scattered history does not
// resolve to a confident label; high-signal buckets keep more of their
// raw share.
type contentTypeBucket struct {
	keywords []string
	weight   float64
}

// Matching is case-insensitive substring matching against category slugs,
// so "county-kerry" and "north-county" both land in the counties bucket.
var contentTypeBuckets = map[profile.ContentType]contentTypeBucket{
	profile.ContentTypeBreaking:      {[]string{"breaking", "news", "alert"}, 1.0},
	profile.ContentTypePolitics:      {[]string{"politics", "government", "election", "dail"}, 0.8},
	profile.ContentTypeBusiness:      {[]string{"business", "economy", "finance", "market"}, 0.8},
	profile.ContentTypeSports:        {[]string{"sport", "gaa", "soccer", "rugby", "racing"}, 0.8},
	profile.ContentTypeEntertainment: {[]string{"entertainment", "celebrity", "culture", "showbiz", "tv"}, 0.6},
	profile.ContentTypeTech:          {[]string{"tech", "science", "gadget"}, 0.6},
	profile.ContentTypeLifestyle:     {[]string{"lifestyle", "health", "food", "travel", "fashion"}, 0.6},
	profile.ContentTypeOpinion:       {[]string{"opinion", "column", "editorial", "comment"}, 0.7},
	profile.ContentTypeCounties:      {[]string{"county", "local", "region"}, 0.9},
}

// classifierBucketOrder fixes the iteration order so equal shares resolve
// the same bucket on every call.
var classifierBucketOrder = []profile.ContentType{
	profile.ContentTypeBreaking,
	profile.ContentTypePolitics,
	profile.ContentTypeBusiness,
	profile.ContentTypeSports,
	profile.ContentTypeEntertainment,
	profile.ContentTypeTech,
	profile.ContentTypeLifestyle,
	profile.ContentTypeOpinion,
	profile.ContentTypeCounties,
}

// ClassifyContentType folds a visit history into a single content-type
// label. Each bucket's weighted share is the fraction of total visits
// whose category slug matches any of the bucket's keywords, discounted by
// the bucket's specificity weight; the winning bucket is returned only
// when its weighted share exceeds the threshold, otherwise the profile
// stays mixed.
func ClassifyContentType(visits map[string]int, totalVisits int, threshold float64) profile.ContentType {
	if totalVisits <= 0 {
		return profile.ContentTypeMixed
	}

	best := profile.ContentTypeMixed
	bestShare := 0.0

	for _, bucketType := range classifierBucketOrder {
		bucket := contentTypeBuckets[bucketType]

		matched := 0
		for slug, count := range visits {
			if slugMatchesBucket(slug, bucket.keywords) {
				matched += count
			}
		}

		share := float64(matched) / float64(totalVisits) * bucket.weight
		if share > bestShare {
			bestShare = share
			best = bucketType
		}
	}

	if bestShare > threshold {
		return best
	}
	return profile.ContentTypeMixed
}

func slugMatchesBucket(slug string, keywords []string) bool {
	lowered := strings.ToLower(slug)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
