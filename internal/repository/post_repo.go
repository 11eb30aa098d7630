package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blogify-api/internal/database"
	"github.com/blogify-api/internal/models"
	"github.com/goccy/go-json"
)

var postTables = map[models.Category]string{
	models.CategoryBlog:  "blog_posts",
	models.CategoryNews:  "news_articles",
	models.CategoryStory: "stories",
}

const postColumns = "id, title, author, image_url, excerpt, content, tags, created_at, updated_at"

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

func tableFor(category models.Category) (string, error) {
	table, ok := postTables[category]
	if !ok {
		return "", fmt.Errorf("unknown category %q", category)
	}
	return table, nil
}

// Create inserts a new post and fills in its id and timestamps
func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	table, err := tableFor(post.Category)
	if err != nil {
		return err
	}

	tagsJSON, err := encodeTags(post.Tags)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO ` + table + ` (title, author, image_url, excerpt, content, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id, created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		post.Title, post.Author, post.ImageURL, post.Excerpt, post.Content, tagsJSON, now,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// List returns every post of a category, newest first
func (r *postRepo) List(ctx context.Context, category models.Category) ([]models.Post, error) {
	table, err := tableFor(category)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, "SELECT "+postColumns+" FROM "+table+" ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		post, err := scanPost(rows, category)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

// GetByID retrieves a post by ID; a missing row yields nil, nil
func (r *postRepo) GetByID(ctx context.Context, category models.Category, id int64) (*models.Post, error) {
	table, err := tableFor(category)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx, "SELECT "+postColumns+" FROM "+table+" WHERE id = $1", id)
	post, err := scanPost(row, category)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Update replaces the editable fields of a post. It reports false when no
// row matched.
func (r *postRepo) Update(ctx context.Context, post *models.Post) (bool, error) {
	table, err := tableFor(post.Category)
	if err != nil {
		return false, err
	}

	tagsJSON, err := encodeTags(post.Tags)
	if err != nil {
		return false, err
	}

	query := `
		UPDATE ` + table + `
		SET title = $1, author = $2, image_url = $3, excerpt = $4, content = $5, tags = $6, updated_at = $7
		WHERE id = $8
		RETURNING created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		post.Title, post.Author, post.ImageURL, post.Excerpt, post.Content, tagsJSON,
		time.Now().UTC(), post.ID,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("update %s: %w", table, err)
	}
	return true, nil
}

// Delete removes a post and reports whether a row existed
func (r *postRepo) Delete(ctx context.Context, category models.Category, id int64) (bool, error) {
	table, err := tableFor(category)
	if err != nil {
		return false, err
	}

	res, err := r.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListAll returns the posts of every category in one round trip
func (r *postRepo) ListAll(ctx context.Context) ([]models.Post, error) {
	query := `
		SELECT 'blog', ` + postColumns + ` FROM blog_posts
		UNION ALL
		SELECT 'news', ` + postColumns + ` FROM news_articles
		UNION ALL
		SELECT 'story', ` + postColumns + ` FROM stories
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var (
			post     models.Post
			category string
			tagsJSON []byte
		)
		err := rows.Scan(&category, &post.ID, &post.Title, &post.Author, &post.ImageURL,
			&post.Excerpt, &post.Content, &tagsJSON, &post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			return nil, err
		}
		post.Category = models.Category(category)
		if post.Tags, err = decodeTags(tagsJSON); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// Count returns the number of posts in a category
func (r *postRepo) Count(ctx context.Context, category models.Category) (int, error) {
	table, err := tableFor(category)
	if err != nil {
		return 0, err
	}
	var count int
	err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner, category models.Category) (*models.Post, error) {
	var post models.Post
	var tagsJSON []byte

	err := row.Scan(&post.ID, &post.Title, &post.Author, &post.ImageURL,
		&post.Excerpt, &post.Content, &tagsJSON, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}

	post.Category = category
	if post.Tags, err = decodeTags(tagsJSON); err != nil {
		return nil, err
	}
	return &post, nil
}

func encodeTags(tags []string) ([]byte, error) {
	if tags == nil {
		return []byte("[]"), nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	return data, nil
}

// decodeTags treats NULL and empty columns as no tags
func decodeTags(data []byte) ([]string, error) {
	tags := []string{}
	if len(data) == 0 {
		return tags, nil
	}
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
