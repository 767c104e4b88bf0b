package posts

import (
	"context"

	"github.com/framezhq/framez/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	// ListAll returns every post, newest first.
	ListAll(ctx context.Context) ([]models.Post, error)
	// ListByUser returns the user's posts, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Post, error)
}
