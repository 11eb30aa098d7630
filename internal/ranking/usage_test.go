package ranking

import (
	"testing"

	"github.com/blogify-api/internal/models"
)

func TestCountUsage(t *testing.T) {
	items := []models.Post{
		post(1, models.CategoryBlog, 1, "AI", "tech"),
		post(2, models.CategoryNews, 2, "Maintenance"),
		post(3, models.CategoryStory, 3, "news", "ai"),
		post(4, models.CategoryStory, 4, "Tech", "TECH"),
	}

	counts := CountUsage([]string{"AI", "tech", "news", "unused"}, items)

	tests := []struct {
		tag  string
		want int
	}{
		{"AI", 2},   // exact match only, "Maintenance" must not count
		{"tech", 2}, // repeated tag on item 4 counts once
		{"news", 1},
		{"unused", 0},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if counts[tt.tag] != tt.want {
				t.Errorf("CountUsage()[%q] = %d, want %d", tt.tag, counts[tt.tag], tt.want)
			}
		})
	}
}

func TestCountUsage_DistinctNamesSameFold(t *testing.T) {
	items := []models.Post{
		post(1, models.CategoryBlog, 1, "go"),
	}

	counts := CountUsage([]string{"Go", "go", "go"}, items)

	if counts["Go"] != 1 || counts["go"] != 1 {
		t.Errorf("Expected both spellings to count 1, got %v", counts)
	}
}

func TestUsageOf_DropsToZeroAfterRemoval(t *testing.T) {
	items := []models.Post{
		post(1, models.CategoryStory, 1, "news"),
		post(2, models.CategoryBlog, 2, "misc"),
	}

	if got := UsageOf("news", items); got != 1 {
		t.Fatalf("Expected usage 1 while referenced, got %d", got)
	}

	items[0].Tags = []string{}
	if got := UsageOf("news", items); got != 0 {
		t.Errorf("Expected usage 0 after removal, got %d", got)
	}
}
