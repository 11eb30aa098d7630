package models

import (
	"time"
)

// DefaultTagColor is used when a tag is saved without a color
const DefaultTagColor = "#6366F1"

// Tag is an independently managed label that posts reference by name
type Tag struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Color       string    `json:"color" db:"color"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// TagInput is the request body for creating or updating a tag
type TagInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

// TagUsage reports how many posts reference a tag name
type TagUsage struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
