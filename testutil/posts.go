package testutil

import (
	"context"
	"sort"
	"sync"

	"portfolio/models"
)

// PostRepo is an in-memory PostRepository.
type PostRepo struct {
	mu    sync.Mutex
	posts []models.Post

	Err error
}

func (r *PostRepo) Create(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.posts = append(r.posts, *post)
	sort.SliceStable(r.posts, func(i, j int) bool { return r.posts[i].CreatedAt.Before(r.posts[j].CreatedAt) })
	return nil
}

func (r *PostRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return int64(len(r.posts)), nil
}

func (r *PostRepo) List(_ context.Context, skip, limit int64) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []models.Post{}
	if skip < 0 {
		skip = 0
	}
	for i := skip; i < int64(len(r.posts)); i++ {
		if limit > 0 && int64(len(out)) == limit {
			break
		}
		out = append(out, r.posts[i])
	}
	return out, nil
}

func (r *PostRepo) GetByID(_ context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, p := range r.posts {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}
