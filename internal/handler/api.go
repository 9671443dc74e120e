package handler

import (
	"github.com/codesmith/internal/media"
	"github.com/codesmith/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	posts      *service.PostService
	tags       *service.TagService
	categories *service.CategoryService
	authors    *service.AuthorService
	comments   *service.CommentService
	projects   *service.ProjectService
	images     *service.ImageService
	portfolio  *service.PortfolioService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, files *media.Store, mediaURL string) *API {
	return &API{
		db:         gdb,
		posts:      service.NewPostService(gdb, mediaURL),
		tags:       service.NewTagService(gdb),
		categories: service.NewCategoryService(gdb),
		authors:    service.NewAuthorService(gdb),
		comments:   service.NewCommentService(gdb),
		projects:   service.NewProjectService(gdb, mediaURL),
		images:     service.NewImageService(gdb, files, mediaURL),
		portfolio:  service.NewPortfolioService(gdb, mediaURL),
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}
