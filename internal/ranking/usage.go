package ranking

import (
	"strings"

	"github.com/blogify-api/internal/models"
)

// CountUsage returns, for every name in tagNames, the number of items whose
// tag list contains that name. Matching is exact and case-insensitive; a
// tag repeated within one item counts once.
func CountUsage(tagNames []string, items []models.Post) map[string]int {
	counts := make(map[string]int, len(tagNames))
	index := make(map[string][]string, len(tagNames))
	for _, name := range tagNames {
		if _, dup := counts[name]; dup {
			continue
		}
		counts[name] = 0
		key := strings.ToLower(name)
		index[key] = append(index[key], name)
	}

	for _, item := range items {
		seen := make(map[string]struct{}, len(item.Tags))
		for _, tag := range item.Tags {
			key := strings.ToLower(tag)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			for _, name := range index[key] {
				counts[name]++
			}
		}
	}

	return counts
}

// UsageOf counts the items referencing a single tag name
func UsageOf(tagName string, items []models.Post) int {
	return CountUsage([]string{tagName}, items)[tagName]
}
