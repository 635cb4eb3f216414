package post

import (
	"context"
	"time"

	postRepo "portfolio/database/repository/post"
	"portfolio/models"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PostService interface {
	Create(ctx context.Context, req models.CreatePostRequest) (*models.Post, error)
	Page(ctx context.Context, page, size int64) (*models.PostPage, error)
	List(ctx context.Context) (*models.PostList, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
}

// DefaultPostService is the production implementation.
type DefaultPostService struct {
	Repo postRepo.PostRepository
	Now  func() time.Time
}
