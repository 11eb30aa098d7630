package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/blogify-api/internal/metrics"
	"github.com/blogify-api/internal/models"
	"github.com/blogify-api/internal/repository"
	"github.com/blogify-api/internal/validation"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	repo      repository.CommentRepository
	posts     repository.PostRepository
	validator *validation.Validator
	log       zerolog.Logger
}

func newCommentService(repo repository.CommentRepository, posts repository.PostRepository, v *validation.Validator, log zerolog.Logger) *commentService {
	return &commentService{
		repo:      repo,
		posts:     posts,
		validator: v,
		log:       log.With().Str("service", "comment").Logger(),
	}
}

// Create stores a comment on an existing post
func (s *commentService) Create(ctx context.Context, input *models.CommentInput) (*models.Comment, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Content = strings.TrimSpace(input.Content)
	input.PostType = strings.TrimSpace(input.PostType)

	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	category, _ := models.ParseCategory(input.PostType)
	post, err := s.posts.GetByID(ctx, category, input.PostID)
	if err != nil {
		return nil, fmt.Errorf("check post: %w", err)
	}
	if post == nil {
		return nil, notFound(category.Label())
	}

	comment := &models.Comment{
		PostID:   input.PostID,
		PostType: category,
		Name:     input.Name,
		Email:    input.Email,
		Content:  input.Content,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	metrics.RecordMutation("comment", "create")
	s.log.Info().
		Int64("id", comment.ID).
		Int64("post_id", comment.PostID).
		Str("post_type", string(comment.PostType)).
		Msg("Comment created")

	return comment, nil
}

// ListByPost returns the comments of a post, newest first
func (s *commentService) ListByPost(ctx context.Context, postID int64, postType string) ([]models.Comment, error) {
	category, ok := models.ParseCategory(postType)
	if !ok {
		return nil, validation.Field("postType", "postType must be one of: blog, news, story", postType)
	}

	comments, err := s.repo.ListByPost(ctx, postID, category)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}
