package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/codesmith/internal/service"
	"github.com/gin-gonic/gin"
)

// ListPosts 返回一页已发布文章，支持 per_page 与 JSON 形式的 filter 参数。
func (a *API) ListPosts(c *gin.Context) {
	page, err := parsePositiveInt(c.Param("page_number"), 1)
	if err != nil {
		respondError(c, http.StatusBadRequest, "page_number must be a positive integer")
		return
	}
	perPage, err := parsePositiveInt(c.Query("per_page"), service.DefaultPerPage)
	if err != nil {
		respondError(c, http.StatusBadRequest, "per_page must be a positive integer")
		return
	}
	filter, err := service.ParsePostFilter(c.Query("filter"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := a.posts.ListPage(c.Request.Context(), page, perPage, filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPagination) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondInternal(c, err, "failed to list posts")
		return
	}

	c.JSON(http.StatusOK, result)
}

// CountPages returns the number of full pages of published posts.
func (a *API) CountPages(c *gin.Context) {
	perPage, err := parsePositiveInt(c.Param("post_per_page"), 0)
	if err != nil || perPage == 0 {
		respondError(c, http.StatusBadRequest, "post_per_page must be a positive integer")
		return
	}

	pages, err := a.posts.CountPages(c.Request.Context(), perPage)
	if err != nil {
		respondInternal(c, err, "failed to count pages")
		return
	}

	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

// GetPost returns a single published post by slug.
func (a *API) GetPost(c *gin.Context) {
	post, err := a.posts.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			respondError(c, http.StatusNotFound, "post not found")
		case errors.Is(err, service.ErrPostSlugIsRequired):
			respondError(c, http.StatusBadRequest, "slug is required")
		default:
			respondInternal(c, err, "failed to load post")
		}
		return
	}

	c.JSON(http.StatusOK, post)
}

// RelatedPosts returns up to three published posts of a category.
func (a *API) RelatedPosts(c *gin.Context) {
	related, err := a.posts.Related(c.Request.Context(), c.Param("category_slug"), c.Query("exclude"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryRequired) {
			respondError(c, http.StatusBadRequest, "category slug is required")
			return
		}
		respondInternal(c, err, "failed to load related posts")
		return
	}

	c.JSON(http.StatusOK, related)
}

// ListTags returns every tag.
func (a *API) ListTags(c *gin.Context) {
	tags, err := a.tags.List(c.Request.Context())
	if err != nil {
		respondInternal(c, err, "failed to list tags")
		return
	}
	c.JSON(http.StatusOK, tags)
}

// ListCategories returns every category with its published post count.
func (a *API) ListCategories(c *gin.Context) {
	categories, err := a.categories.List(c.Request.Context())
	if err != nil {
		respondInternal(c, err, "failed to list categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

type commentRequest struct {
	Name    string `json:"name" binding:"required,max=80"`
	Email   string `json:"email" binding:"required,email"`
	Content string `json:"content" binding:"required"`
}

// ListComments returns the public comments of a post.
func (a *API) ListComments(c *gin.Context) {
	comments, err := a.comments.ListPublic(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleCommentError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CreateComment adds a reader comment to a published post.
func (a *API) CreateComment(c *gin.Context) {
	var req commentRequest
	if !bindJSON(c, &req, "name, a valid email and content are required") {
		return
	}

	comment, err := a.comments.Create(c.Request.Context(), c.Param("slug"), service.CommentInput{
		Name:    req.Name,
		Email:   strings.TrimSpace(req.Email),
		Content: req.Content,
	})
	if err != nil {
		handleCommentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func handleCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		respondError(c, http.StatusNotFound, "post not found")
	case errors.Is(err, service.ErrCommentInvalid), errors.Is(err, service.ErrPostSlugIsRequired):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrCommentNotFound):
		respondError(c, http.StatusNotFound, "comment not found")
	default:
		respondInternal(c, err, "failed to process comment")
	}
}
