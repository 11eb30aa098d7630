package mocks

import (
	"context"

	"github.com/blogify-api/internal/models"
	"github.com/blogify-api/internal/ranking"
	"github.com/blogify-api/internal/service"
)

// MockPostService is a mock implementation of PostService. Unset funcs
// return zero values.
type MockPostService struct {
	CreateFunc  func(ctx context.Context, category models.Category, input *models.PostInput) (*models.Post, error)
	ListFunc    func(ctx context.Context, category models.Category) ([]models.Post, error)
	GetFunc     func(ctx context.Context, category models.Category, id int64) (*models.Post, error)
	UpdateFunc  func(ctx context.Context, category models.Category, id int64, input *models.PostInput) (*models.Post, error)
	DeleteFunc  func(ctx context.Context, category models.Category, id int64) error
	RelatedFunc func(ctx context.Context, category models.Category, id int64, query models.RelatedQuery) ([]ranking.ScoredPost, error)

	RelatedCalls []models.RelatedQuery
}

// Verify interface compliance
var _ service.PostService = (*MockPostService)(nil)

func NewMockPostService() *MockPostService {
	return &MockPostService{}
}

func (m *MockPostService) Create(ctx context.Context, category models.Category, input *models.PostInput) (*models.Post, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category, input)
	}
	return &models.Post{ID: 1, Category: category, Title: input.Title, Tags: input.Tags}, nil
}

func (m *MockPostService) List(ctx context.Context, category models.Category) ([]models.Post, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, category)
	}
	return []models.Post{}, nil
}

func (m *MockPostService) Get(ctx context.Context, category models.Category, id int64) (*models.Post, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, category, id)
	}
	return &models.Post{ID: id, Category: category}, nil
}

func (m *MockPostService) Update(ctx context.Context, category models.Category, id int64, input *models.PostInput) (*models.Post, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, category, id, input)
	}
	return &models.Post{ID: id, Category: category, Title: input.Title}, nil
}

func (m *MockPostService) Delete(ctx context.Context, category models.Category, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, category, id)
	}
	return nil
}

func (m *MockPostService) Related(ctx context.Context, category models.Category, id int64, query models.RelatedQuery) ([]ranking.ScoredPost, error) {
	m.RelatedCalls = append(m.RelatedCalls, query)
	if m.RelatedFunc != nil {
		return m.RelatedFunc(ctx, category, id, query)
	}
	return []ranking.ScoredPost{}, nil
}
