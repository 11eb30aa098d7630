// Package ranking scores posts against a tag set and counts tag usage.
package ranking

import (
	"slices"
	"strings"

	"github.com/blogify-api/internal/models"
)

// DefaultLimit is the number of related posts returned when the caller
// does not ask for a specific amount
const DefaultLimit = 3

// ScoredPost is a post annotated with its relevance to a tag set
type ScoredPost struct {
	models.Post
	RelevanceScore int      `json:"relevanceScore"`
	MatchingTags   []string `json:"matchingTags"`
}

// Rank orders items by how many tags they share with sourceTags, most
// recent first on ties, and returns at most limit of them. Every item whose
// ID equals sourceID is excluded regardless of category. An empty tag set
// scores everything 0, which leaves a pure recency ordering.
func Rank(sourceID int64, sourceTags []string, items []models.Post, limit int) []ScoredPost {
	if limit < 0 {
		limit = 0
	}

	wanted := make(map[string]struct{}, len(sourceTags))
	for _, tag := range sourceTags {
		wanted[strings.ToLower(tag)] = struct{}{}
	}

	scored := make([]ScoredPost, 0, len(items))
	for _, item := range items {
		if item.ID == sourceID {
			continue
		}

		matching := []string{}
		for _, tag := range item.Tags {
			if _, ok := wanted[strings.ToLower(tag)]; ok {
				matching = append(matching, tag)
			}
		}

		scored = append(scored, ScoredPost{
			Post:           item,
			RelevanceScore: len(matching),
			MatchingTags:   matching,
		})
	}

	slices.SortStableFunc(scored, func(a, b ScoredPost) int {
		if a.RelevanceScore != b.RelevanceScore {
			return b.RelevanceScore - a.RelevanceScore
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
