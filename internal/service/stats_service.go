package service

import (
	"context"
	"fmt"

	"github.com/blogify-api/internal/models"
	"github.com/blogify-api/internal/repository"
	"github.com/rs/zerolog"
)

type statsService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newStatsService(repos *repository.Repositories, log zerolog.Logger) *statsService {
	return &statsService{
		repos: repos,
		log:   log.With().Str("service", "stats").Logger(),
	}
}

// Counts returns the number of rows per resource
func (s *statsService) Counts(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats

	counters := []struct {
		name  string
		dst   *int
		count func(context.Context) (int, error)
	}{
		{"blogs", &stats.Blogs, s.categoryCount(models.CategoryBlog)},
		{"news", &stats.News, s.categoryCount(models.CategoryNews)},
		{"stories", &stats.Stories, s.categoryCount(models.CategoryStory)},
		{"tags", &stats.Tags, s.repos.Tag.Count},
		{"comments", &stats.Comments, s.repos.Comment.Count},
		{"users", &stats.Users, s.repos.User.Count},
	}

	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.name, err)
		}
		*c.dst = n
	}
	return &stats, nil
}

func (s *statsService) categoryCount(category models.Category) func(context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		return s.repos.Post.Count(ctx, category)
	}
}
