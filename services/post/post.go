package post

import (
	"context"
	"math"
	"strings"
	"time"

	"portfolio/models"
	"portfolio/utils"

	"github.com/google/uuid"
)

var contentTypes = map[string]bool{"text": true, "code": true, "quote": true}

func (s *DefaultPostService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func validate(req models.CreatePostRequest) error {
	if strings.TrimSpace(req.ImageURL) == "" || strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.Lang) == "" || len(req.Content) == 0 || req.Tags == nil {
		return utils.NewValidationError("Please provide imageUrl, title, lang, content and tags")
	}
	for _, block := range req.Content {
		if !contentTypes[block.Type] {
			return utils.NewValidationError("content type must be one of text, code, quote")
		}
	}
	return nil
}

func (s *DefaultPostService) Create(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	now := s.now()
	post := &models.Post{
		ID:        uuid.New().String(),
		ImageURL:  req.ImageURL,
		Title:     req.Title,
		Lang:      req.Lang,
		Content:   req.Content,
		Tags:      req.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, post); err != nil {
		return nil, utils.NewInternalError("Internal Server error", err)
	}
	return post, nil
}

// Page returns the 1-based page of posts. Non-positive arguments fall back to
// the defaults and size is capped at MaxPageSize.
func (s *DefaultPostService) Page(ctx context.Context, page, size int64) (*models.PostPage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	if page-1 > math.MaxInt64/size {
		return nil, utils.NewValidationError("page is out of range")
	}

	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Internal Server error", err)
	}
	posts, err := s.Repo.List(ctx, (page-1)*size, size)
	if err != nil {
		return nil, utils.NewInternalError("Internal Server error", err)
	}
	return &models.PostPage{
		Elements:   len(posts),
		Page:       page,
		Size:       size,
		TotalItems: total,
		TotalPages: (total + size - 1) / size,
		Data:       posts,
	}, nil
}

func (s *DefaultPostService) List(ctx context.Context) (*models.PostList, error) {
	posts, err := s.Repo.List(ctx, 0, 0)
	if err != nil {
		return nil, utils.NewInternalError("Internal Server error", err)
	}
	return &models.PostList{Elements: len(posts), Posts: posts}, nil
}

func (s *DefaultPostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewInternalError("Internal Server error", err)
	}
	if post == nil {
		return nil, utils.NewNotFoundError("Post not found")
	}
	return post, nil
}
