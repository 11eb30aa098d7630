package models

import (
	"time"
)

// Category identifies one of the three content collections
type Category string

const (
	CategoryBlog  Category = "blog"
	CategoryNews  Category = "news"
	CategoryStory Category = "story"
)

// Categories lists every content category in display order
var Categories = []Category{CategoryBlog, CategoryNews, CategoryStory}

// ParseCategory converts a path or payload value into a Category
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryBlog, CategoryNews, CategoryStory:
		return Category(s), true
	}
	return "", false
}

// CollectionPath is the plural path segment used by list endpoints
func (c Category) CollectionPath() string {
	switch c {
	case CategoryBlog:
		return "blogs"
	case CategoryStory:
		return "stories"
	default:
		return string(c)
	}
}

// Label is the human readable name used in API messages
func (c Category) Label() string {
	switch c {
	case CategoryBlog:
		return "Blog post"
	case CategoryNews:
		return "News article"
	case CategoryStory:
		return "Story"
	default:
		return "Post"
	}
}

// Post is a content item of any category
type Post struct {
	ID        int64     `json:"id" db:"id"`
	Category  Category  `json:"category" db:"-"`
	Title     string    `json:"title" db:"title"`
	Author    string    `json:"author" db:"author"`
	ImageURL  *string   `json:"imageUrl" db:"image_url"`
	Excerpt   string    `json:"excerpt" db:"excerpt"`
	Content   string    `json:"content" db:"content"`
	Tags      []string  `json:"tags" db:"-"` // Stored as JSONB
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// PostInput is the request body for creating or updating a post
type PostInput struct {
	Title    string   `json:"title" validate:"required,max=255"`
	Author   string   `json:"author" validate:"required,max=255"`
	ImageURL string   `json:"imageUrl"`
	Excerpt  string   `json:"excerpt" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Tags     []string `json:"tags" validate:"dive,max=100"`
}

// RelatedQuery carries the options of a related-content lookup
type RelatedQuery struct {
	Tags  []string
	Limit int
}
