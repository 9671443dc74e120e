package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/codesmith/internal/db"
	"github.com/codesmith/internal/service"
	"github.com/gin-gonic/gin"
)

type postRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Slug        string     `json:"slug" binding:"max=150"`
	Excerpt     string     `json:"excerpt" binding:"required"`
	Content     string     `json:"content" binding:"required"`
	Image       string     `json:"image"`
	PublishedAt *time.Time `json:"published_at"`
	Featured    bool       `json:"featured"`
	ReadTime    string     `json:"read_time" binding:"max=20"`
	AuthorID    uint       `json:"author_id" binding:"required"`
	CategoryID  uint       `json:"category_id" binding:"required"`
	TagIDs      []uint     `json:"tag_ids"`
}

func (r postRequest) toInput() service.PostInput {
	return service.PostInput{
		Title:       r.Title,
		Slug:        r.Slug,
		Excerpt:     r.Excerpt,
		Content:     r.Content,
		Image:       r.Image,
		PublishedAt: r.PublishedAt,
		Featured:    r.Featured,
		ReadTime:    r.ReadTime,
		AuthorID:    r.AuthorID,
		CategoryID:  r.CategoryID,
		TagIDs:      r.TagIDs,
	}
}

// AdminGetPost returns a post by id regardless of publish state.
func (a *API) AdminGetPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := a.posts.Get(c.Request.Context(), id)
	if err != nil {
		handlePostWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": serializePost(post)})
}

// CreatePost 创建文章
func (a *API) CreatePost(c *gin.Context) {
	var req postRequest
	if !bindJSON(c, &req, "title, excerpt, content, author_id and category_id are required") {
		return
	}

	post, err := a.posts.Create(c.Request.Context(), req.toInput())
	if err != nil {
		handlePostWriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": serializePost(post)})
}

// UpdatePost 更新文章
func (a *API) UpdatePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	var req postRequest
	if !bindJSON(c, &req, "title, excerpt, content, author_id and category_id are required") {
		return
	}

	post, err := a.posts.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		handlePostWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": serializePost(post)})
}

// DeletePost 删除文章及其评论
func (a *API) DeletePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := a.posts.Delete(c.Request.Context(), id); err != nil {
		handlePostWriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func handlePostWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		respondError(c, http.StatusNotFound, "post not found")
	case errors.Is(err, service.ErrSlugTaken):
		respondError(c, http.StatusBadRequest, "slug already in use")
	case errors.Is(err, service.ErrPostInvalid):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAuthorNotFound):
		respondError(c, http.StatusBadRequest, "author not found")
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, http.StatusBadRequest, "category not found")
	case errors.Is(err, service.ErrTagNotFound):
		respondError(c, http.StatusBadRequest, "tag not found")
	default:
		respondInternal(c, err, "failed to save post")
	}
}

func serializePost(post *db.Post) gin.H {
	tags := make([]gin.H, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tags = append(tags, gin.H{"id": tag.ID, "name": tag.Name, "slug": tag.Slug})
	}

	return gin.H{
		"id":           post.ID,
		"title":        post.Title,
		"slug":         post.Slug,
		"excerpt":      post.Excerpt,
		"content":      post.Content,
		"image":        post.Image,
		"published_at": post.PublishedAt,
		"featured":     post.Featured,
		"is_live":      post.IsPublishedAt(time.Now()),
		"read_time":    post.ReadTime,
		"author":       gin.H{"id": post.Author.ID, "name": post.Author.Name},
		"category":     gin.H{"id": post.Category.ID, "title": post.Category.Title, "slug": post.Category.Slug},
		"tags":         tags,
		"created_at":   post.CreatedAt,
		"updated_at":   post.UpdatedAt,
	}
}
