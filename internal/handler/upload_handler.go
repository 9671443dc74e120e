package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/codesmith/internal/media"
	"github.com/codesmith/internal/service"
	"github.com/gin-gonic/gin"
)

// GetImage 按名称返回图片信息。
func (a *API) GetImage(c *gin.Context) {
	image, err := a.images.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageNotFound):
			respondError(c, http.StatusNotFound, service.ErrImageNotFound.Error())
		case errors.Is(err, service.ErrImageAmbiguous):
			respondError(c, http.StatusBadRequest, service.ErrImageAmbiguous.Error())
		case errors.Is(err, service.ErrImageNameRequired):
			respondError(c, http.StatusBadRequest, "image name is required")
		default:
			respondInternal(c, err, "failed to load image")
		}
		return
	}
	c.JSON(http.StatusOK, image)
}

// ListImages returns all named images.
func (a *API) ListImages(c *gin.Context) {
	images, err := a.images.List(c.Request.Context())
	if err != nil {
		respondInternal(c, err, "failed to list images")
		return
	}
	c.JSON(http.StatusOK, images)
}

// UploadImage 处理命名图片上传（multipart 字段 image、name、alt）。
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "image file is required")
		return
	}
	if file.Size > media.MaxUploadSize {
		respondError(c, http.StatusBadRequest, "image is too large")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondInternal(c, err, "failed to read upload")
		return
	}
	defer src.Close()

	name := c.PostForm("name")
	if strings.TrimSpace(name) == "" {
		name = file.Filename
	}

	image, err := a.images.Upload(c.Request.Context(), name, c.PostForm("alt"), src)
	if err != nil {
		handleUploadError(c, err)
		return
	}
	c.JSON(http.StatusCreated, image)
}

// UploadMedia stores an image for posts, authors or projects and returns its
// path relative to the media root.
func (a *API) UploadMedia(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "file is required")
		return
	}
	if file.Size > media.MaxUploadSize {
		respondError(c, http.StatusBadRequest, "image is too large")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondInternal(c, err, "failed to read upload")
		return
	}
	defer src.Close()

	stored, err := a.images.UploadMedia(c.Param("folder"), file.Filename, src)
	if err != nil {
		handleUploadError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"path":   stored.Path,
		"width":  stored.Width,
		"height": stored.Height,
	})
}

// DeleteImage removes a named image and its file.
func (a *API) DeleteImage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid image id")
		return
	}

	if err := a.images.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			respondError(c, http.StatusNotFound, service.ErrImageNotFound.Error())
			return
		}
		respondInternal(c, err, "failed to delete image")
		return
	}
	c.Status(http.StatusNoContent)
}

func handleUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, media.ErrInvalidImage):
		respondError(c, http.StatusBadRequest, "file is not a supported image")
	case errors.Is(err, media.ErrInvalidPath):
		respondError(c, http.StatusBadRequest, "unknown media folder")
	case errors.Is(err, service.ErrImageNameRequired):
		respondError(c, http.StatusBadRequest, "image name is required")
	default:
		respondInternal(c, err, "failed to store image")
	}
}
