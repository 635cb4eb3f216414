package postRepo

import (
	"context"

	"portfolio/models"
)

// PostRepository defines methods for blog post data access.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Count(ctx context.Context) (int64, error)
	// List returns posts oldest first. A limit of zero returns everything after skip.
	List(ctx context.Context, skip, limit int64) ([]models.Post, error)
	// GetByID returns (nil, nil) when no post has the id.
	GetByID(ctx context.Context, id string) (*models.Post, error)
}
