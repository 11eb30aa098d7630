package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/blogify-api/internal/database"
	"github.com/blogify-api/internal/models"
)

type contactRepo struct {
	db *database.DB
}

// NewContactRepo creates a new contact repository
func NewContactRepo(db *database.DB) ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) Create(ctx context.Context, msg *models.ContactMessage) error {
	query := `
		INSERT INTO contact (fullname, email, message, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, msg.Fullname, msg.Email, msg.Message, time.Now().UTC()).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}
