package handlers

import (
	"net/http"
	"strconv"

	"portfolio/models"
	"portfolio/services/post"
	"portfolio/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	PostService post.PostService
}

func NewPostHandler(svc post.PostService) *PostHandler {
	return &PostHandler{PostService: svc}
}

func (h *PostHandler) CreatePostHandler(c *gin.Context) {
	var req models.CreatePostRequest
	if !bind(c, &req, "Please provide imageUrl, title, lang, content and tags") {
		return
	}
	created, err := h.PostService.Create(c.Request.Context(), req)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "New post added", created)
}

// GetPostsHandler serves one page; page and size default when absent.
func (h *PostHandler) GetPostsHandler(c *gin.Context) {
	page, ok := queryInt(c, "page")
	if !ok {
		return
	}
	size, ok := queryInt(c, "size")
	if !ok {
		return
	}
	result, err := h.PostService.Page(c.Request.Context(), page, size)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Posts got with page and size", result)
}

func (h *PostHandler) GetPostsListHandler(c *gin.Context) {
	result, err := h.PostService.List(c.Request.Context())
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "All posts got successfully", result)
}

func (h *PostHandler) GetPostByIDHandler(c *gin.Context) {
	result, err := h.PostService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Post fetched successfully", result)
}

// queryInt parses an optional integer query parameter; absent means 0.
func queryInt(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		utils.JSONError(c, utils.NewValidationError(name+" must be an integer"))
		return 0, false
	}
	return n, true
}
