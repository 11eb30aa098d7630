package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blogify-api/internal/metrics"
	"github.com/blogify-api/internal/models"
	"github.com/blogify-api/internal/ranking"
	"github.com/blogify-api/internal/repository"
	"github.com/blogify-api/internal/validation"
	"github.com/rs/zerolog"
)

// tagService is the concrete implementation of TagService
type tagService struct {
	repo      repository.TagRepository
	posts     repository.PostRepository
	validator *validation.Validator
	log       zerolog.Logger
}

func newTagService(repo repository.TagRepository, posts repository.PostRepository, v *validation.Validator, log zerolog.Logger) *tagService {
	return &tagService{
		repo:      repo,
		posts:     posts,
		validator: v,
		log:       log.With().Str("service", "tag").Logger(),
	}
}

func (s *tagService) Create(ctx context.Context, input *models.TagInput) (*models.Tag, error) {
	tag, err := s.buildTag(input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, tag); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTagExists
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}

	metrics.RecordMutation("tag", "create")
	s.log.Info().Int64("id", tag.ID).Str("name", tag.Name).Msg("Tag created")
	return tag, nil
}

func (s *tagService) List(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (s *tagService) Get(ctx context.Context, id int64) (*models.Tag, error) {
	tag, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tag %d: %w", id, err)
	}
	if tag == nil {
		return nil, notFound("Tag")
	}
	return tag, nil
}

// Update renames or recolors a tag. Posts keep the names they were saved
// with.
func (s *tagService) Update(ctx context.Context, id int64, input *models.TagInput) (*models.Tag, error) {
	tag, err := s.buildTag(input)
	if err != nil {
		return nil, err
	}
	tag.ID = id

	ok, err := s.repo.Update(ctx, tag)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrTagExists
	}
	if err != nil {
		return nil, fmt.Errorf("update tag %d: %w", id, err)
	}
	if !ok {
		return nil, notFound("Tag")
	}

	metrics.RecordMutation("tag", "update")
	s.log.Info().Int64("id", id).Str("name", tag.Name).Msg("Tag updated")
	return tag, nil
}

// Delete removes a tag that no post references
func (s *tagService) Delete(ctx context.Context, id int64) error {
	tag, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	items, err := s.posts.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load posts: %w", err)
	}
	if n := ranking.UsageOf(tag.Name, items); n > 0 {
		s.log.Info().Str("name", tag.Name).Int("usage", n).Msg("Refusing to delete tag in use")
		return &TagInUseError{Tag: tag.Name, Count: n}
	}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete tag %d: %w", id, err)
	}
	if !ok {
		return notFound("Tag")
	}

	metrics.RecordMutation("tag", "delete")
	s.log.Info().Int64("id", id).Str("name", tag.Name).Msg("Tag deleted")
	return nil
}

// Usage counts, for every tag, the posts of all categories that carry it
func (s *tagService) Usage(ctx context.Context) ([]models.TagUsage, error) {
	tags, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.posts.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}

	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	counts := ranking.CountUsage(names, items)

	usage := make([]models.TagUsage, len(tags))
	for i, name := range names {
		usage[i] = models.TagUsage{Tag: name, Count: counts[name]}
	}
	return usage, nil
}

func (s *tagService) buildTag(input *models.TagInput) (*models.Tag, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.Color = strings.TrimSpace(input.Color)

	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	color := input.Color
	if color == "" {
		color = models.DefaultTagColor
	}
	return &models.Tag{
		Name:        input.Name,
		Description: input.Description,
		Color:       color,
	}, nil
}
