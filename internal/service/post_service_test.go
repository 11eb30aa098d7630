package service_test

import (
	"context"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/blogify-api/internal/mocks"
	"github.com/blogify-api/internal/models"
	"github.com/blogify-api/internal/service"
	"github.com/blogify-api/internal/validation"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func validInput(tags ...string) *models.PostInput {
	return &models.PostInput{
		Title:   "Title",
		Author:  "Author",
		Excerpt: "Excerpt",
		Content: "Content",
		Tags:    tags,
	}
}

func TestPostService_CreateRoundTripsTags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.services.Post.Create(ctx, models.CategoryNews, validInput("Go", " web ", "", "AI"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := f.services.Post.Get(ctx, models.CategoryNews, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	want := []string{"Go", "web", "AI"}
	if !reflect.DeepEqual(got.Tags, want) {
		t.Errorf("Expected tags %v, got %v", want, got.Tags)
	}
	if got.Category != models.CategoryNews {
		t.Errorf("Expected category news, got %s", got.Category)
	}
}

func TestPostService_CreateWithoutTags(t *testing.T) {
	f := newFixture(t)

	created, err := f.services.Post.Create(context.Background(), models.CategoryBlog, validInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Tags == nil || len(created.Tags) != 0 {
		t.Errorf("Expected empty non-nil tags, got %#v", created.Tags)
	}
	if created.ImageURL != nil {
		t.Errorf("Expected no image, got %q", *created.ImageURL)
	}
}

func TestPostService_CreateValidation(t *testing.T) {
	f := newFixture(t)

	input := validInput()
	input.Title = "   "
	input.Content = ""

	_, err := f.services.Post.Create(context.Background(), models.CategoryBlog, input)
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected validation errors, got %v", err)
	}
	if len(verrs) != 2 {
		t.Errorf("Expected 2 field errors, got %v", verrs)
	}
	if len(f.store.Posts.Posts[models.CategoryBlog]) != 0 {
		t.Error("Invalid post must not be stored")
	}
}

func TestPostService_GetNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.services.Post.Get(context.Background(), models.CategoryStory, 99)
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if err.Error() != "Story not found" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

func TestPostService_ListNewestFirst(t *testing.T) {
	f := newFixture(t)
	f.store.Posts.Seed(models.Post{ID: 1, Category: models.CategoryBlog, Title: "old", CreatedAt: baseTime})
	f.store.Posts.Seed(models.Post{ID: 2, Category: models.CategoryBlog, Title: "new", CreatedAt: baseTime.Add(time.Hour)})
	f.store.Posts.Seed(models.Post{ID: 3, Category: models.CategoryNews, Title: "other", CreatedAt: baseTime})

	posts, err := f.services.Post.List(context.Background(), models.CategoryBlog)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(posts) != 2 || posts[0].Title != "new" || posts[1].Title != "old" {
		t.Errorf("Unexpected list %+v", posts)
	}
}

func TestPostService_InlineImageLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	input := validInput()
	input.ImageURL = pngDataURI(t)
	created, err := f.services.Post.Create(ctx, models.CategoryBlog, input)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ImageURL == nil {
		t.Fatal("Expected stored image URL")
	}
	first := *created.ImageURL
	if !fileExists(f.uploadedFile(first)) {
		t.Fatalf("Expected image file for %s", first)
	}

	// replace with another inline image
	update := validInput()
	update.ImageURL = pngDataURI(t)
	updated, err := f.services.Post.Update(ctx, models.CategoryBlog, created.ID, update)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	second := *updated.ImageURL
	if second == first {
		t.Fatal("Expected a new file name")
	}
	if fileExists(f.uploadedFile(first)) {
		t.Error("Old image should be deleted after a successful update")
	}
	if !fileExists(f.uploadedFile(second)) {
		t.Error("New image should exist")
	}

	// delete removes the file too
	if err := f.services.Post.Delete(ctx, models.CategoryBlog, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if fileExists(f.uploadedFile(second)) {
		t.Error("Image should be deleted with the post")
	}
}

func TestPostService_UpdateKeepsResubmittedImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	input := validInput()
	input.ImageURL = pngDataURI(t)
	created, err := f.services.Post.Create(ctx, models.CategoryNews, input)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	stored := *created.ImageURL

	// same file, spelled differently
	update := validInput()
	update.ImageURL = strings.Replace(stored, "/uploads/", "/uploads//", 1)
	if _, err := f.services.Post.Update(ctx, models.CategoryNews, created.ID, update); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !fileExists(f.uploadedFile(stored)) {
		t.Error("Image still referenced by the post must not be deleted")
	}

	update = validInput()
	update.ImageURL = stored
	if _, err := f.services.Post.Update(ctx, models.CategoryNews, created.ID, update); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !fileExists(f.uploadedFile(stored)) {
		t.Error("Resubmitting the stored URL must keep the file")
	}
}

func TestPostService_ExternalImageURLStoredAsGiven(t *testing.T) {
	f := newFixture(t)

	input := validInput()
	input.ImageURL = "https://cdn.example.com/cover.jpg"
	created, err := f.services.Post.Create(context.Background(), models.CategoryStory, input)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ImageURL == nil || *created.ImageURL != input.ImageURL {
		t.Errorf("Expected URL to be kept, got %v", created.ImageURL)
	}
}

func TestPostService_InvalidInlineImage(t *testing.T) {
	f := newFixture(t)

	input := validInput()
	input.ImageURL = "data:image/png;base64,aGVsbG8="
	_, err := f.services.Post.Create(context.Background(), models.CategoryBlog, input)

	var verrs validation.Errors
	if !errors.As(err, &verrs) || verrs[0].Field != "imageUrl" {
		t.Fatalf("Expected imageUrl validation error, got %v", err)
	}
}

// failingUpdateRepo lets reads succeed while updates fail
type failingUpdateRepo struct {
	*mocks.MockPostRepository
}

func (r failingUpdateRepo) Update(ctx context.Context, post *models.Post) (bool, error) {
	return false, errors.New("connection reset")
}

func TestPostService_FailedUpdateKeepsOldImage(t *testing.T) {
	cfg := testConfig(t)
	repos, store := mocks.NewRepositories()
	repos.Post = failingUpdateRepo{store.Posts}
	f := newFixtureWith(t, cfg, repos, store)
	ctx := context.Background()

	input := validInput()
	input.ImageURL = pngDataURI(t)
	created, err := f.services.Post.Create(ctx, models.CategoryBlog, input)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	update := validInput()
	update.ImageURL = pngDataURI(t)
	if _, err := f.services.Post.Update(ctx, models.CategoryBlog, created.ID, update); err == nil {
		t.Fatal("Expected update error")
	}

	if !fileExists(f.uploadedFile(*created.ImageURL)) {
		t.Error("Old image must survive a failed update")
	}

	entries, err := os.ReadDir(cfg.Upload.Dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the original image on disk, found %d files", len(entries))
	}
}

func TestPostService_UpdateAndDeleteNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.services.Post.Update(ctx, models.CategoryBlog, 7, validInput()); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Update: expected ErrNotFound, got %v", err)
	}
	if err := f.services.Post.Delete(ctx, models.CategoryBlog, 7); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}
}

func seedRelatedScenario(f *fixture) {
	f.store.Posts.Seed(models.Post{ID: 10, Category: models.CategoryBlog, Tags: []string{"AI", "Tech"}, CreatedAt: baseTime})
	f.store.Posts.Seed(models.Post{ID: 1, Category: models.CategoryNews, Tags: []string{"ai", "tech"}, CreatedAt: baseTime.Add(-48 * time.Hour)})
	f.store.Posts.Seed(models.Post{ID: 2, Category: models.CategoryStory, Tags: []string{"Tech"}, CreatedAt: baseTime.Add(-24 * time.Hour)})
	f.store.Posts.Seed(models.Post{ID: 3, Category: models.CategoryBlog, Tags: []string{"Food"}, CreatedAt: baseTime.Add(-time.Hour)})
}

func TestPostService_RelatedUsesStoredTags(t *testing.T) {
	f := newFixture(t)
	seedRelatedScenario(f)

	got, err := f.services.Post.Related(context.Background(), models.CategoryBlog, 10, models.RelatedQuery{Limit: 2})
	if err != nil {
		t.Fatalf("Related failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(got))
	}
	if got[0].ID != 1 || got[0].RelevanceScore != 2 {
		t.Errorf("Expected id 1 with score 2 first, got id %d score %d", got[0].ID, got[0].RelevanceScore)
	}
	if got[1].ID != 2 || got[1].RelevanceScore != 1 {
		t.Errorf("Expected id 2 with score 1 second, got id %d score %d", got[1].ID, got[1].RelevanceScore)
	}
}

func TestPostService_RelatedResolvesSourceInOtherCategory(t *testing.T) {
	f := newFixture(t)
	seedRelatedScenario(f)

	// id 10 lives in blog; asking through story still finds its tags
	got, err := f.services.Post.Related(context.Background(), models.CategoryStory, 10, models.RelatedQuery{})
	if err != nil {
		t.Fatalf("Related failed: %v", err)
	}
	if len(got) != 3 || got[0].ID != 1 {
		t.Errorf("Expected stored tags to drive ranking, got %+v", got)
	}
}

func TestPostService_RelatedQueryTagsOverride(t *testing.T) {
	f := newFixture(t)
	seedRelatedScenario(f)

	got, err := f.services.Post.Related(context.Background(), models.CategoryBlog, 10,
		models.RelatedQuery{Tags: []string{"food"}})
	if err != nil {
		t.Fatalf("Related failed: %v", err)
	}
	if got[0].ID != 3 || got[0].RelevanceScore != 1 {
		t.Errorf("Expected query tags to win, got id %d score %d", got[0].ID, got[0].RelevanceScore)
	}
	if !reflect.DeepEqual(got[0].MatchingTags, []string{"Food"}) {
		t.Errorf("Expected candidate spelling, got %v", got[0].MatchingTags)
	}
}

func TestPostService_RelatedUnknownSourceFallsBackToRecency(t *testing.T) {
	f := newFixture(t)
	seedRelatedScenario(f)

	got, err := f.services.Post.Related(context.Background(), models.CategoryBlog, 404, models.RelatedQuery{})
	if err != nil {
		t.Fatalf("Related should not fail for unknown source, got %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected default limit 3, got %d", len(got))
	}
	wantIDs := []int64{10, 3, 2}
	for i, id := range wantIDs {
		if got[i].ID != id || got[i].RelevanceScore != 0 {
			t.Errorf("Position %d: expected id %d score 0, got id %d score %d", i, id, got[i].ID, got[i].RelevanceScore)
		}
	}
}

func TestPostService_RelatedRepositoryError(t *testing.T) {
	f := newFixture(t)
	f.store.Posts.Err = errors.New("db down")

	if _, err := f.services.Post.Related(context.Background(), models.CategoryBlog, 1, models.RelatedQuery{}); err == nil {
		t.Error("Expected error when the repository fails")
	}
}

func TestParseRelatedQuery(t *testing.T) {
	tests := []struct {
		name      string
		tags      string
		limit     string
		wantTags  []string
		wantLimit int
		wantErr   bool
	}{
		{"empty", "", "", nil, 0, false},
		{"limit only", "", "5", nil, 5, false},
		{"non-numeric limit", "", "abc", nil, 0, false},
		{"zero limit", "", "0", nil, 0, false},
		{"negative limit", "", "-2", nil, 0, false},
		{"tags", `["AI","Tech"]`, "2", []string{"AI", "Tech"}, 2, false},
		{"empty array", `[]`, "", []string{}, 0, false},
		{"malformed", `["AI"`, "", nil, 0, true},
		{"not strings", `[1,2]`, "", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := service.ParseRelatedQuery(tt.tags, tt.limit)
			if tt.wantErr {
				if !errors.Is(err, service.ErrMalformedTags) {
					t.Errorf("Expected ErrMalformedTags, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if q.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", q.Limit, tt.wantLimit)
			}
			if len(q.Tags) != len(tt.wantTags) {
				t.Errorf("Tags = %v, want %v", q.Tags, tt.wantTags)
			}
		})
	}
}
