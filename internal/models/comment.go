package models

import (
	"time"
)

// Comment represents a reader comment on a post
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	PostType  Category  `json:"postType" db:"post_type"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CommentInput is the request body for posting a comment
type CommentInput struct {
	PostID   int64  `json:"postId" validate:"required,gt=0"`
	PostType string `json:"postType" validate:"required,oneof=blog news story"`
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Content  string `json:"content" validate:"required"`
}
