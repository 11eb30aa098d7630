package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/blogify-api/internal/database"
	"github.com/blogify-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (post_id, post_type, name, email, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		comment.PostID, string(comment.PostType), comment.Name, comment.Email, comment.Content,
		time.Now().UTC(),
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// ListByPost returns the comments of one post, newest first
func (r *commentRepo) ListByPost(ctx context.Context, postID int64, postType models.Category) ([]models.Comment, error) {
	query := `
		SELECT id, post_id, post_type, name, email, content, created_at
		FROM comments WHERE post_id = $1 AND post_type = $2
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, postID, string(postType))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		var postTypeStr string
		if err := rows.Scan(&c.ID, &c.PostID, &postTypeStr, &c.Name, &c.Email, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.PostType = models.Category(postTypeStr)
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}
