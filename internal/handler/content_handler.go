package handler

import (
	"errors"
	"net/http"

	"github.com/codesmith/internal/service"
	"github.com/gin-gonic/gin"
)

type authorRequest struct {
	Name   string `json:"name" binding:"required,max=100"`
	Email  string `json:"email" binding:"required,email"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

type commentVisibilityRequest struct {
	Public *bool `json:"is_public" binding:"required"`
}

// ListAuthors returns all authors.
func (a *API) ListAuthors(c *gin.Context) {
	authors, err := a.authors.List(c.Request.Context())
	if err != nil {
		respondInternal(c, err, "failed to list authors")
		return
	}

	response := make([]gin.H, 0, len(authors))
	for _, author := range authors {
		response = append(response, gin.H{
			"id":     author.ID,
			"name":   author.Name,
			"email":  author.Email,
			"bio":    author.Bio,
			"avatar": author.Avatar,
		})
	}
	c.JSON(http.StatusOK, response)
}

// CreateAuthor registers a new author.
func (a *API) CreateAuthor(c *gin.Context) {
	var req authorRequest
	if !bindJSON(c, &req, "author name and a valid email are required") {
		return
	}

	author, err := a.authors.Create(c.Request.Context(), service.AuthorInput{
		Name:   req.Name,
		Email:  req.Email,
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthorExists):
			respondError(c, http.StatusBadRequest, "author email already registered")
		case errors.Is(err, service.ErrAuthorInvalid):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondInternal(c, err, "failed to create author")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": author.ID, "name": author.Name, "email": author.Email})
}

// SetCommentVisibility hides or shows a comment.
func (a *API) SetCommentVisibility(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid comment id")
		return
	}

	var req commentVisibilityRequest
	if !bindJSON(c, &req, "is_public is required") {
		return
	}

	if err := a.comments.SetVisibility(c.Request.Context(), id, *req.Public); err != nil {
		handleCommentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "is_public": *req.Public})
}
