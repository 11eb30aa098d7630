package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blogify-api/internal/database"
	"github.com/blogify-api/internal/models"
)

const tagColumns = "id, name, description, color, created_at, updated_at"

// tagRepo is the concrete implementation of TagRepository
type tagRepo struct {
	db *database.DB
}

// NewTagRepo creates a new tag repository
func NewTagRepo(db *database.DB) TagRepository {
	return &tagRepo{db: db}
}

// Create inserts a new tag; a taken name yields ErrDuplicate
func (r *tagRepo) Create(ctx context.Context, tag *models.Tag) error {
	query := `
		INSERT INTO tags (name, description, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, tag.Name, tag.Description, tag.Color, time.Now().UTC()).
		Scan(&tag.ID, &tag.CreatedAt, &tag.UpdatedAt)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// List returns all tags ordered by name
func (r *tagRepo) List(ctx context.Context) ([]models.Tag, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+tagColumns+" FROM tags ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Description, &tag.Color, &tag.CreatedAt, &tag.UpdatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// GetByID retrieves a tag by ID
func (r *tagRepo) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.QueryRowContext(ctx, "SELECT "+tagColumns+" FROM tags WHERE id = $1", id).
		Scan(&tag.ID, &tag.Name, &tag.Description, &tag.Color, &tag.CreatedAt, &tag.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Update rewrites a tag's fields
func (r *tagRepo) Update(ctx context.Context, tag *models.Tag) (bool, error) {
	query := `
		UPDATE tags SET name = $1, description = $2, color = $3, updated_at = $4
		WHERE id = $5
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, tag.Name, tag.Description, tag.Color, time.Now().UTC(), tag.ID).
		Scan(&tag.CreatedAt, &tag.UpdatedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, mapError(err)
	}
	return true, nil
}

// Delete removes a tag
func (r *tagRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tags WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Count returns the total number of tags
func (r *tagRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tags").Scan(&count)
	return count, err
}
