package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/blogify-api/internal/metrics"
	"github.com/blogify-api/internal/models"
	"github.com/blogify-api/internal/ranking"
	"github.com/blogify-api/internal/repository"
	"github.com/blogify-api/internal/storage"
	"github.com/blogify-api/internal/validation"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// postService is the concrete implementation of PostService
type postService struct {
	repo         repository.PostRepository
	images       *storage.ImageStore
	validator    *validation.Validator
	defaultLimit int
	log          zerolog.Logger
}

func newPostService(repo repository.PostRepository, images *storage.ImageStore, v *validation.Validator, defaultLimit int, log zerolog.Logger) *postService {
	if defaultLimit <= 0 {
		defaultLimit = ranking.DefaultLimit
	}
	return &postService{
		repo:         repo,
		images:       images,
		validator:    v,
		defaultLimit: defaultLimit,
		log:          log.With().Str("service", "post").Logger(),
	}
}

// ParseRelatedQuery reads the raw "tags" and "limit" query parameters.
// A non-empty tags value must be a JSON array of strings; an empty array
// means "use the stored tags". A missing, non-numeric or non-positive
// limit is left as 0 so the service default applies.
func ParseRelatedQuery(rawTags, rawLimit string) (models.RelatedQuery, error) {
	var q models.RelatedQuery

	if n, err := strconv.Atoi(strings.TrimSpace(rawLimit)); err == nil && n > 0 {
		q.Limit = n
	}

	if strings.TrimSpace(rawTags) == "" {
		return q, nil
	}
	if err := json.Unmarshal([]byte(rawTags), &q.Tags); err != nil {
		return q, fmt.Errorf("%w: %v", ErrMalformedTags, err)
	}
	return q, nil
}

// Create validates input, stores an inline image if one was sent and
// inserts the post
func (s *postService) Create(ctx context.Context, category models.Category, input *models.PostInput) (*models.Post, error) {
	post, err := s.buildPost(category, input)
	if err != nil {
		return nil, err
	}

	newImage, err := s.storeInlineImage(input.ImageURL)
	if err != nil {
		return nil, err
	}
	if newImage != "" {
		post.ImageURL = &newImage
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.discardImage(newImage)
		return nil, fmt.Errorf("create %s: %w", category, err)
	}

	metrics.RecordMutation(string(category), "create")
	s.log.Info().
		Str("category", string(category)).
		Int64("id", post.ID).
		Int("tags", len(post.Tags)).
		Msg("Post created")

	return post, nil
}

// List returns every post of a category, newest first
func (s *postService) List(ctx context.Context, category models.Category) ([]models.Post, error) {
	posts, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", category, err)
	}
	return posts, nil
}

// Get returns one post or a NotFoundError
func (s *postService) Get(ctx context.Context, category models.Category, id int64) (*models.Post, error) {
	post, err := s.repo.GetByID(ctx, category, id)
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", category, id, err)
	}
	if post == nil {
		return nil, notFound(category.Label())
	}
	return post, nil
}

// Update replaces a post. A new inline image is written before the row is
// updated and the previous file is removed only once the update succeeded.
func (s *postService) Update(ctx context.Context, category models.Category, id int64, input *models.PostInput) (*models.Post, error) {
	post, err := s.buildPost(category, input)
	if err != nil {
		return nil, err
	}
	post.ID = id

	existing, err := s.Get(ctx, category, id)
	if err != nil {
		return nil, err
	}

	newImage, err := s.storeInlineImage(input.ImageURL)
	if err != nil {
		return nil, err
	}
	if newImage != "" {
		post.ImageURL = &newImage
	}

	ok, err := s.repo.Update(ctx, post)
	if err != nil {
		s.discardImage(newImage)
		return nil, fmt.Errorf("update %s %d: %w", category, id, err)
	}
	if !ok {
		s.discardImage(newImage)
		return nil, notFound(category.Label())
	}

	if old := existing.ImageURL; old != nil && (post.ImageURL == nil || !s.images.SameFile(*old, *post.ImageURL)) {
		s.discardImage(*old)
	}

	metrics.RecordMutation(string(category), "update")
	s.log.Info().
		Str("category", string(category)).
		Int64("id", id).
		Msg("Post updated")

	return post, nil
}

// Delete removes a post and then its stored image
func (s *postService) Delete(ctx context.Context, category models.Category, id int64) error {
	existing, err := s.Get(ctx, category, id)
	if err != nil {
		return err
	}

	ok, err := s.repo.Delete(ctx, category, id)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", category, id, err)
	}
	if !ok {
		return notFound(category.Label())
	}

	if existing.ImageURL != nil {
		s.discardImage(*existing.ImageURL)
	}

	metrics.RecordMutation(string(category), "delete")
	s.log.Info().
		Str("category", string(category)).
		Int64("id", id).
		Msg("Post deleted")

	return nil
}

// Related ranks posts of every category against the source tags. Tags
// supplied in the query win; otherwise the stored tags of the source post
// are used. An unknown source degrades to a pure recency listing.
func (s *postService) Related(ctx context.Context, category models.Category, id int64, query models.RelatedQuery) ([]ranking.ScoredPost, error) {
	tags := query.Tags
	source := metrics.TagSourceQuery

	if len(tags) == 0 {
		post, err := s.findSource(ctx, category, id)
		switch {
		case errors.Is(err, ErrNotFound):
			s.log.Warn().
				Str("category", string(category)).
				Int64("id", id).
				Msg("Related lookup for unknown post, falling back to recency")
			tags, source = nil, metrics.TagSourceNone
		case err != nil:
			return nil, err
		default:
			tags, source = post.Tags, metrics.TagSourceStored
		}
	}

	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	limit := query.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}

	metrics.RecordRelated(string(category), source)
	return ranking.Rank(id, tags, items, limit), nil
}

// findSource looks the id up in the route's category first, then in the
// other categories
func (s *postService) findSource(ctx context.Context, category models.Category, id int64) (*models.Post, error) {
	order := []models.Category{category}
	for _, c := range models.Categories {
		if c != category {
			order = append(order, c)
		}
	}

	for _, c := range order {
		post, err := s.repo.GetByID(ctx, c, id)
		if err != nil {
			return nil, fmt.Errorf("resolve source %s %d: %w", c, id, err)
		}
		if post != nil {
			return post, nil
		}
	}
	return nil, notFound(category.Label())
}

func (s *postService) buildPost(category models.Category, input *models.PostInput) (*models.Post, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Author = strings.TrimSpace(input.Author)
	input.Excerpt = strings.TrimSpace(input.Excerpt)
	input.Content = strings.TrimSpace(input.Content)
	input.ImageURL = strings.TrimSpace(input.ImageURL)
	input.Tags = cleanTags(input.Tags)

	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	post := &models.Post{
		Category: category,
		Title:    input.Title,
		Author:   input.Author,
		Excerpt:  input.Excerpt,
		Content:  input.Content,
		Tags:     input.Tags,
	}
	if input.ImageURL != "" && !storage.IsInlineImage(input.ImageURL) {
		url := input.ImageURL
		post.ImageURL = &url
	}
	return post, nil
}

func (s *postService) storeInlineImage(value string) (string, error) {
	if !storage.IsInlineImage(value) {
		return "", nil
	}

	path, err := s.images.SaveDataURI(value)
	switch {
	case errors.Is(err, storage.ErrImageTooLarge):
		return "", validation.Field("imageUrl", "image exceeds the maximum allowed size", nil)
	case errors.Is(err, storage.ErrInvalidImage):
		return "", validation.Field("imageUrl", "imageUrl must be a png, jpeg, gif or webp image", nil)
	case err != nil:
		return "", fmt.Errorf("store image: %w", err)
	}

	metrics.RecordImageStored("post")
	return path, nil
}

// discardImage removes a stored image; failures are logged, not returned
func (s *postService) discardImage(path string) {
	if path == "" || !s.images.Owns(path) {
		return
	}
	if err := s.images.Delete(path); err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("Failed to delete image")
	}
}

// cleanTags trims tags and drops blanks while keeping order
func cleanTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return cleaned
}
