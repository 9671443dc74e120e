package handler

import (
	"errors"
	"net/http"

	"github.com/codesmith/internal/service"
	"github.com/gin-gonic/gin"
)

type tagRequest struct {
	Name string `json:"name" binding:"required,max=30"`
	Slug string `json:"slug" binding:"max=40"`
}

type categoryRequest struct {
	Title string `json:"title" binding:"required,max=50"`
	Slug  string `json:"slug" binding:"max=60"`
}

// CreateTag 创建新标签
func (a *API) CreateTag(c *gin.Context) {
	var req tagRequest
	if !bindJSON(c, &req, "tag name is required") {
		return
	}

	tag, err := a.tags.Create(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTagExists):
			respondError(c, http.StatusBadRequest, "tag already exists")
		case errors.Is(err, service.ErrTagNameRequired):
			respondError(c, http.StatusBadRequest, "tag name is required")
		default:
			respondInternal(c, err, "failed to create tag")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": tag.ID, "name": tag.Name, "slug": tag.Slug})
}

// DeleteTag 删除未被文章使用的标签
func (a *API) DeleteTag(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid tag id")
		return
	}

	if err := a.tags.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrTagInUse):
			respondError(c, http.StatusBadRequest, "tag is still used by posts")
		case errors.Is(err, service.ErrTagNotFound):
			respondError(c, http.StatusNotFound, "tag not found")
		default:
			respondInternal(c, err, "failed to delete tag")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateCategory 创建文章分类
func (a *API) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if !bindJSON(c, &req, "category title is required") {
		return
	}

	category, err := a.categories.Create(c.Request.Context(), req.Title, req.Slug)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryExists):
			respondError(c, http.StatusBadRequest, "category already exists")
		case errors.Is(err, service.ErrCategoryTitleRequired):
			respondError(c, http.StatusBadRequest, "category title is required")
		default:
			respondInternal(c, err, "failed to create category")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": category.ID, "title": category.Title, "slug": category.Slug})
}

// DeleteCategory 删除没有文章的分类
func (a *API) DeleteCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := a.categories.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryInUse):
			respondError(c, http.StatusBadRequest, "category still has posts")
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, "category not found")
		default:
			respondInternal(c, err, "failed to delete category")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
