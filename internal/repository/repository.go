package repository

import (
	"context"
	"errors"

	"github.com/blogify-api/internal/database"
	"github.com/blogify-api/internal/models"
	"github.com/lib/pq"
)

// ErrDuplicate is returned when an insert or update violates a unique constraint
var ErrDuplicate = errors.New("duplicate value")

// PostRepository defines the interface for content data operations.
// Every method is scoped to one category except ListAll.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	List(ctx context.Context, category models.Category) ([]models.Post, error)
	GetByID(ctx context.Context, category models.Category, id int64) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) (bool, error)
	Delete(ctx context.Context, category models.Category, id int64) (bool, error)
	ListAll(ctx context.Context) ([]models.Post, error)
	Count(ctx context.Context, category models.Category) (int, error)
}

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	List(ctx context.Context) ([]models.Tag, error)
	GetByID(ctx context.Context, id int64) (*models.Tag, error)
	Update(ctx context.Context, tag *models.Tag) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID int64, postType models.Category) ([]models.Comment, error)
	Count(ctx context.Context) (int, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdateProfile(ctx context.Context, id int64, update *models.ProfileUpdate) (*models.User, error)
	UpdateProfilePicture(ctx context.Context, id int64, path string) (*models.User, error)
	Count(ctx context.Context) (int, error)
}

// ContactRepository defines the interface for contact form storage
type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Post    PostRepository
	Tag     TagRepository
	Comment CommentRepository
	User    UserRepository
	Contact ContactRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Post:    NewPostRepo(db),
		Tag:     NewTagRepo(db),
		Comment: NewCommentRepo(db),
		User:    NewUserRepo(db),
		Contact: NewContactRepo(db),
	}
}

// mapError converts unique violations to ErrDuplicate
func mapError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
