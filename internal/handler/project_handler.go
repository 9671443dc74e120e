package handler

import (
	"errors"
	"net/http"

	"github.com/codesmith/internal/service"
	"github.com/gin-gonic/gin"
)

// ListProjects returns projects, optionally narrowed by ?category=<short>.
func (a *API) ListProjects(c *gin.Context) {
	projects, err := a.projects.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondInternal(c, err, "failed to list projects")
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetProject returns a project with its details.
func (a *API) GetProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid project id")
		return
	}

	project, err := a.projects.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondError(c, http.StatusNotFound, "project not found")
			return
		}
		respondInternal(c, err, "failed to load project")
		return
	}
	c.JSON(http.StatusOK, project)
}

// ListProjectCategories returns all project categories.
func (a *API) ListProjectCategories(c *gin.Context) {
	categories, err := a.projects.ListCategories(c.Request.Context())
	if err != nil {
		respondInternal(c, err, "failed to list project categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}
