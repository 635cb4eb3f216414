package post

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"portfolio/models"
	"portfolio/testutil"
	"portfolio/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() (*DefaultPostService, *testutil.PostRepo, *testutil.Clock) {
	repo := &testutil.PostRepo{}
	clock := testutil.NewClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	return &DefaultPostService{Repo: repo, Now: clock.Now}, repo, clock
}

func validRequest(title string) models.CreatePostRequest {
	return models.CreatePostRequest{
		ImageURL: "https://img/1.png",
		Title:    title,
		Lang:     "en",
		Content:  []models.ContentBlock{{Type: "text", Content: "hello"}, {Type: "code", Content: "fmt.Println()"}},
		Tags:     []models.PostTag{{Tag: "go"}},
	}
}

func TestCreate(t *testing.T) {
	svc, _, clock := newService()
	post, err := svc.Create(context.Background(), validRequest("First"))
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, clock.Now(), post.CreatedAt)

	got, err := svc.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)
}

func TestCreate_Validation(t *testing.T) {
	svc, repo, _ := newService()

	missingTitle := validRequest("")
	badBlock := validRequest("x")
	badBlock.Content = []models.ContentBlock{{Type: "image", Content: "x"}}
	noContent := validRequest("x")
	noContent.Content = nil

	for _, req := range []models.CreatePostRequest{missingTitle, badBlock, noContent} {
		_, err := svc.Create(context.Background(), req)
		assert.True(t, utils.IsKind(err, utils.KindValidation), "got %v", err)
	}
	n, _ := repo.Count(context.Background())
	assert.Zero(t, n)
}

func TestPage(t *testing.T) {
	svc, _, clock := newService()
	ctx := context.Background()
	for i := 1; i <= 23; i++ {
		_, err := svc.Create(ctx, validRequest(fmt.Sprintf("post %d", i)))
		require.NoError(t, err)
		clock.Advance(time.Minute)
	}

	page, err := svc.Page(ctx, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Elements)
	assert.Equal(t, int64(23), page.TotalItems)
	assert.Equal(t, int64(3), page.TotalPages)
	assert.Equal(t, "post 21", page.Data[0].Title)

	page, err = svc.Page(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultPage), page.Page)
	assert.Equal(t, int64(DefaultPageSize), page.Size)
	assert.Equal(t, "post 1", page.Data[0].Title)

	page, err = svc.Page(ctx, 9, 10)
	require.NoError(t, err)
	assert.Zero(t, page.Elements)
	assert.NotNil(t, page.Data)
}

func TestList(t *testing.T) {
	svc, _, _ := newService()
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Zero(t, list.Elements)

	_, err = svc.Create(context.Background(), validRequest("a"))
	require.NoError(t, err)
	list, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, list.Elements)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.GetByID(context.Background(), "missing")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestRepositoryErrorsAreInternal(t *testing.T) {
	svc, repo, _ := newService()
	repo.Err = errors.New("db down")

	_, err := svc.Page(context.Background(), 1, 10)
	assert.True(t, utils.IsKind(err, utils.KindInternal))
	_, err = svc.GetByID(context.Background(), "x")
	assert.True(t, utils.IsKind(err, utils.KindInternal))
}

func TestPage_RejectsPageBeyondRange(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Page(context.Background(), math.MaxInt64, 10)
	assert.True(t, utils.IsKind(err, utils.KindValidation), "got %v", err)

	page, err := svc.Page(context.Background(), math.MaxInt64/10, 10)
	require.NoError(t, err)
	assert.Zero(t, page.Elements)
}
