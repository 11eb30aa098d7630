package service

import (
	"context"
	"fmt"
	"io"

	"github.com/blogify-api/internal/config"
	"github.com/blogify-api/internal/models"
	"github.com/blogify-api/internal/ranking"
	"github.com/blogify-api/internal/repository"
	"github.com/blogify-api/internal/security"
	"github.com/blogify-api/internal/storage"
	"github.com/blogify-api/internal/validation"
	"github.com/rs/zerolog"
)

// PostService defines the content operations shared by every category
type PostService interface {
	Create(ctx context.Context, category models.Category, input *models.PostInput) (*models.Post, error)
	List(ctx context.Context, category models.Category) ([]models.Post, error)
	Get(ctx context.Context, category models.Category, id int64) (*models.Post, error)
	Update(ctx context.Context, category models.Category, id int64, input *models.PostInput) (*models.Post, error)
	Delete(ctx context.Context, category models.Category, id int64) error
	Related(ctx context.Context, category models.Category, id int64, query models.RelatedQuery) ([]ranking.ScoredPost, error)
}

// TagService defines the interface for tag management
type TagService interface {
	Create(ctx context.Context, input *models.TagInput) (*models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
	Get(ctx context.Context, id int64) (*models.Tag, error)
	Update(ctx context.Context, id int64, input *models.TagInput) (*models.Tag, error)
	Delete(ctx context.Context, id int64) error
	Usage(ctx context.Context) ([]models.TagUsage, error)
}

// CommentService defines the interface for reader comments
type CommentService interface {
	Create(ctx context.Context, input *models.CommentInput) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64, postType string) ([]models.Comment, error)
}

// AuthService defines registration, login and token verification
type AuthService interface {
	Register(ctx context.Context, input *models.RegisterInput) (*models.User, error)
	Login(ctx context.Context, input *models.LoginInput) (*models.LoginResult, error)
	Authenticate(token string) (*Actor, error)
}

// ProfileService defines the interface for user profile management
type ProfileService interface {
	Get(ctx context.Context, actor *Actor, id int64) (*models.User, error)
	Update(ctx context.Context, actor *Actor, id int64, update *models.ProfileUpdate) (*models.User, error)
	UpdatePicture(ctx context.Context, actor *Actor, id int64, file io.Reader, filename string) (*models.User, error)
}

// ContactService defines the interface for the contact form
type ContactService interface {
	Create(ctx context.Context, input *models.ContactInput) (*models.ContactMessage, error)
}

// StatsService defines the interface for dashboard counters
type StatsService interface {
	Counts(ctx context.Context) (*models.Stats, error)
}

// Services holds all service interfaces
type Services struct {
	Post    PostService
	Tag     TagService
	Comment CommentService
	Auth    AuthService
	Profile ProfileService
	Contact ContactService
	Stats   StatsService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) (*Services, error) {
	images, err := storage.NewImageStore(cfg.Upload.Dir, cfg.Upload.PublicPath, cfg.Upload.MaxImageBytes, log)
	if err != nil {
		return nil, fmt.Errorf("init image store: %w", err)
	}

	v := validation.NewValidator()
	tokens := security.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL, cfg.Auth.JWTIssuer)
	hasher := security.NewPasswordHasher(cfg.Auth.BcryptCost)

	return &Services{
		Post:    newPostService(repos.Post, images, v, cfg.Related.DefaultLimit, log),
		Tag:     newTagService(repos.Tag, repos.Post, v, log),
		Comment: newCommentService(repos.Comment, repos.Post, v, log),
		Auth:    newAuthService(repos.User, hasher, tokens, v, cfg.Auth.AdminEmails, log),
		Profile: newProfileService(repos.User, images, v, cfg.Upload.MaxProfileImageSize, log),
		Contact: newContactService(repos.Contact, v, log),
		Stats:   newStatsService(repos, log),
	}, nil
}
