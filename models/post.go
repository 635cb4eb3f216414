package models

import "time"

// ContentBlock is one paragraph of a post body.
type ContentBlock struct {
	Type    string `bson:"type" json:"type" binding:"required,oneof=text code quote"`
	Content string `bson:"content" json:"content" binding:"required"`
}

type PostTag struct {
	Tag string `bson:"tag" json:"tag" binding:"required"`
}

// Post is a blog post.
type Post struct {
	ID        string         `bson:"id" json:"id"`
	ImageURL  string         `bson:"imageUrl" json:"imageUrl"`
	Title     string         `bson:"title" json:"title"`
	Lang      string         `bson:"lang" json:"lang"`
	Content   []ContentBlock `bson:"content" json:"content"`
	Tags      []PostTag      `bson:"tags" json:"tags"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// CreatePostRequest is the body of a create-post call.
type CreatePostRequest struct {
	ImageURL string         `json:"imageUrl" binding:"required"`
	Title    string         `json:"title" binding:"required"`
	Lang     string         `json:"lang" binding:"required"`
	Content  []ContentBlock `json:"content" binding:"required,min=1,dive"`
	Tags     []PostTag      `json:"tags" binding:"required,dive"`
}

// PostPage is one page of posts plus paging metadata.
type PostPage struct {
	Elements   int    `json:"elements"`
	Page       int64  `json:"page"`
	Size       int64  `json:"size"`
	TotalItems int64  `json:"totalItems"`
	TotalPages int64  `json:"totalPages"`
	Data       []Post `json:"data"`
}

// PostList is every post with its count.
type PostList struct {
	Elements int    `json:"elements"`
	Posts    []Post `json:"posts"`
}
