package ranking

import (
	"fmt"
	"testing"
	"time"

	"github.com/blogify-api/internal/models"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func post(id int64, category models.Category, ageHours int, tags ...string) models.Post {
	return models.Post{
		ID:        id,
		Category:  category,
		Title:     fmt.Sprintf("post %d", id),
		Tags:      tags,
		CreatedAt: base.Add(-time.Duration(ageHours) * time.Hour),
	}
}

func ids(posts []ScoredPost) []int64 {
	out := make([]int64, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRank_ScoreThenRecency(t *testing.T) {
	// t1 < t2 < t3
	items := []models.Post{
		post(1, models.CategoryBlog, 3, "tech", "ai"),
		post(2, models.CategoryNews, 2, "tech"),
		post(3, models.CategoryStory, 1),
	}

	got := Rank(99, []string{"tech", "ai"}, items, 2)

	if !equalIDs(ids(got), []int64{1, 2}) {
		t.Fatalf("Expected order [1 2], got %v", ids(got))
	}
	if got[0].RelevanceScore != 2 {
		t.Errorf("Expected score 2 for id 1, got %d", got[0].RelevanceScore)
	}
	if got[1].RelevanceScore != 1 {
		t.Errorf("Expected score 1 for id 2, got %d", got[1].RelevanceScore)
	}
}

func TestRank_ExcludesSourceID(t *testing.T) {
	items := []models.Post{
		post(1, models.CategoryBlog, 1, "go"),
		post(2, models.CategoryBlog, 2, "go"),
		post(2, models.CategoryStory, 3, "go"),
		post(3, models.CategoryNews, 4),
	}

	got := Rank(2, []string{"go"}, items, 10)

	for _, p := range got {
		if p.ID == 2 {
			t.Fatalf("Source id 2 must not appear in results (category %s)", p.Category)
		}
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 results, got %d", len(got))
	}
}

func TestRank_LimitBounds(t *testing.T) {
	items := []models.Post{
		post(1, models.CategoryBlog, 1),
		post(2, models.CategoryBlog, 2),
		post(3, models.CategoryBlog, 3),
		post(4, models.CategoryBlog, 4),
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero limit", 0, 0},
		{"negative limit", -5, 0},
		{"smaller than candidates", 2, 2},
		{"equal to candidates", 3, 3},
		{"larger than candidates", 50, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(4, nil, items, tt.limit)
			if len(got) != tt.want {
				t.Errorf("Rank() returned %d items, want %d", len(got), tt.want)
			}
		})
	}
}

func TestRank_EqualScoresNewestFirst(t *testing.T) {
	items := []models.Post{
		post(1, models.CategoryBlog, 10, "go"),
		post(2, models.CategoryNews, 1, "go"),
		post(3, models.CategoryStory, 5, "GO"),
	}

	got := Rank(0, []string{"go"}, items, 3)

	if !equalIDs(ids(got), []int64{2, 3, 1}) {
		t.Errorf("Expected order [2 3 1], got %v", ids(got))
	}
}

func TestRank_NoSourceTagsIsPureRecency(t *testing.T) {
	items := []models.Post{
		post(1, models.CategoryBlog, 30, "go", "tech"),
		post(2, models.CategoryNews, 10),
		post(3, models.CategoryStory, 20, "go"),
	}

	got := Rank(0, nil, items, 10)

	if !equalIDs(ids(got), []int64{2, 3, 1}) {
		t.Errorf("Expected recency order [2 3 1], got %v", ids(got))
	}
	for _, p := range got {
		if p.RelevanceScore != 0 {
			t.Errorf("Expected score 0 for id %d, got %d", p.ID, p.RelevanceScore)
		}
		if p.MatchingTags == nil || len(p.MatchingTags) != 0 {
			t.Errorf("Expected empty non-nil matching tags for id %d, got %#v", p.ID, p.MatchingTags)
		}
	}
}

func TestRank_CaseInsensitiveMatchingKeepsCandidateSpelling(t *testing.T) {
	items := []models.Post{
		post(1, models.CategoryBlog, 1, "Golang", "Web", "misc"),
	}

	got := Rank(0, []string{"golang", "WEB"}, items, 1)

	if len(got) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(got))
	}
	want := []string{"Golang", "Web"}
	if len(got[0].MatchingTags) != len(want) {
		t.Fatalf("Expected matching tags %v, got %v", want, got[0].MatchingTags)
	}
	for i := range want {
		if got[0].MatchingTags[i] != want[i] {
			t.Errorf("Expected matching tags %v, got %v", want, got[0].MatchingTags)
		}
	}
	if got[0].RelevanceScore != 2 {
		t.Errorf("Expected score 2, got %d", got[0].RelevanceScore)
	}
}

func TestRank_KeepsZeroScoreItems(t *testing.T) {
	items := []models.Post{
		post(1, models.CategoryBlog, 1, "cooking"),
		post(2, models.CategoryBlog, 2, "go"),
	}

	got := Rank(0, []string{"go"}, items, 5)

	if !equalIDs(ids(got), []int64{2, 1}) {
		t.Fatalf("Expected [2 1], got %v", ids(got))
	}
	if got[1].RelevanceScore != 0 {
		t.Errorf("Expected trailing zero-score item, got score %d", got[1].RelevanceScore)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	items := []models.Post{
		post(1, models.CategoryBlog, 5),
		post(2, models.CategoryBlog, 1, "go"),
	}

	Rank(0, []string{"go"}, items, 5)

	if items[0].ID != 1 || items[1].ID != 2 {
		t.Errorf("Input slice was reordered: %d, %d", items[0].ID, items[1].ID)
	}
}
